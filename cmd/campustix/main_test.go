package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"campustix/internal/adapters/cli"
	"campustix/internal/domain"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 2, exitCode(fmt.Errorf("%w: unknown role", cli.ErrUsage)))
	assert.Equal(t, 1, exitCode(domain.ErrSoldOut))
	assert.Equal(t, 1, exitCode(errors.New("connection refused")))
}
