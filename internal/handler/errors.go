package handler

import (
	"errors"
	"log"
	"net/http"

	"chirpnet/internal/auth"
	"chirpnet/internal/httputil"
	"chirpnet/internal/model"
)

// respondError maps a service error to its response kind. Every
// sentinel the services return lands here so all handlers answer
// failures the same way.
func respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		httputil.WriteUnauthenticated(w, auth.ErrUnauthenticated.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		httputil.WriteUnauthenticated(w, model.ErrInvalidCredentials.Error())
	case errors.Is(err, auth.ErrForbidden):
		httputil.WriteForbidden(w, auth.ErrForbidden.Error())
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrPostNotFound),
		errors.Is(err, model.ErrCommentNotFound),
		errors.Is(err, model.ErrReplyNotFound):
		httputil.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrEmailExists),
		errors.Is(err, model.ErrUsernameExists):
		httputil.WriteConflict(w, err.Error())
	case errors.Is(err, model.ErrInvalidEmail),
		errors.Is(err, model.ErrPasswordTooShort),
		errors.Is(err, model.ErrPasswordPairRequired),
		errors.Is(err, model.ErrWrongPassword),
		errors.Is(err, model.ErrPostContentMissing),
		errors.Is(err, model.ErrContentRequired),
		errors.Is(err, model.ErrInvalidImageData),
		errors.Is(err, model.ErrImageTooLarge):
		httputil.WriteValidation(w, err.Error())
	default:
		log.Printf("[ERROR] %s: %v", op, err)
		httputil.WriteInternalError(w, "Something went wrong")
	}
}
