package domain

import "errors"

// Kind groups domain errors the caller reacts to in the same way.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindInvalidState     Kind = "invalid_state"
	KindAuthorization    Kind = "authorization"
	KindNotBookable      Kind = "not_bookable"
	KindDuplicateBooking Kind = "duplicate_booking"
	KindSoldOut          Kind = "sold_out"
	KindNotFound         Kind = "not_found"
	KindPayment          Kind = "payment"
)

// Error is a domain failure with a stable code used for message lookup.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches kind sentinels: errors.Is(ErrSoldOut, ErrSoldOutKind) is true.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == "" && t.Kind == e.Kind
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Kind sentinels, for errors.Is checks on a whole family.
var (
	ErrValidation       = &Error{Kind: KindValidation, Message: "validation"}
	ErrInvalidState     = &Error{Kind: KindInvalidState, Message: "invalid state"}
	ErrAuthorization    = &Error{Kind: KindAuthorization, Message: "authorization"}
	ErrNotBookable      = &Error{Kind: KindNotBookable, Message: "not bookable"}
	ErrDuplicateBooking = &Error{Kind: KindDuplicateBooking, Message: "duplicate booking"}
	ErrSoldOutKind      = &Error{Kind: KindSoldOut, Message: "sold out"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
	ErrPayment          = &Error{Kind: KindPayment, Message: "payment"}
)

// Domain errors.
var (
	ErrEventNotFound  = newError(KindNotFound, "event_not_found", "événement non trouvé")
	ErrTicketNotFound = newError(KindNotFound, "ticket_not_found", "billet non trouvé")

	ErrTitleRequired         = newError(KindValidation, "title_required", "le titre est requis")
	ErrDescriptionRequired   = newError(KindValidation, "description_required", "la description est requise")
	ErrCategoryRequired      = newError(KindValidation, "category_required", "la catégorie est requise")
	ErrUnknownCategory       = newError(KindValidation, "unknown_category", "catégorie inconnue")
	ErrDepartmentRequired    = newError(KindValidation, "department_required", "le département est requis")
	ErrLocationRequired      = newError(KindValidation, "location_required", "le lieu est requis")
	ErrDateTimeRequired      = newError(KindValidation, "datetime_required", "la date et l'heure sont requises")
	ErrInvalidDate           = newError(KindValidation, "invalid_date", "date invalide (attendu AAAA-MM-JJ)")
	ErrInvalidTime           = newError(KindValidation, "invalid_time", "heure invalide (attendu HH:MM)")
	ErrDateTimeInPast        = newError(KindValidation, "datetime_in_past", "la date et l'heure doivent être dans le futur")
	ErrInvalidCapacity       = newError(KindValidation, "invalid_capacity", "le nombre de billets doit être supérieur à zéro")
	ErrInvalidPrice          = newError(KindValidation, "invalid_price", "le prix ne peut pas être négatif")
	ErrCannotReduceCapacity  = newError(KindValidation, "cannot_reduce_capacity", "impossible de réduire le nombre de billets sous le nombre de billets émis")
	ErrInconsistentState     = newError(KindValidation, "inconsistent_state", "la date et le lieu doivent être définis ensemble")
	ErrEventNotSuggested     = newError(KindInvalidState, "event_not_suggested", "l'événement n'est pas une suggestion")
	ErrEventNotApproved      = newError(KindInvalidState, "event_not_approved", "l'événement n'est pas encore approuvé")
	ErrNotAuthenticated      = newError(KindAuthorization, "not_authenticated", "utilisateur non identifié")
	ErrNotEventAdmin         = newError(KindAuthorization, "not_event_admin", "seul un administrateur peut effectuer cette action")
	ErrNotDepartmentAdmin    = newError(KindAuthorization, "not_department_admin", "seul l'administrateur du département peut effectuer cette action")
	ErrEventNotBookable      = newError(KindNotBookable, "event_not_bookable", "l'événement n'est pas encore ouvert à la réservation")
	ErrAlreadyBooked         = newError(KindDuplicateBooking, "already_booked", "billet déjà réservé pour cet événement")
	ErrSoldOut               = newError(KindSoldOut, "sold_out", "l'événement est complet")
	ErrPaymentDeclined       = newError(KindPayment, "payment_declined", "le paiement a été refusé")
	ErrPaymentMethodRequired = newError(KindPayment, "payment_method_required", "un moyen de paiement est requis")
)

// Code returns the stable code of a domain error wrapped anywhere in err,
// or "" when err carries none.
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// KindOf returns the kind of a domain error wrapped in err, or "" for
// infrastructure failures.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
