// internal/app/features/shared/shared.go

// Package shared holds the request plumbing every admin CRUD panel repeats:
// resolving the club scope, reading ids and dates, and answering validation
// failures.
package shared

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/authz"
	"github.com/dalemusser/ekskulhub/internal/app/system/inputval"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the wire format of every date-only field.
const DateLayout = "2006-01-02"

// ParseDate parses YYYY-MM-DD as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// FormatDate is the inverse of ParseDate.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DateRange reads ?from= and ?to= (YYYY-MM-DD, both optional). to is
// inclusive on the wire and returned as the following midnight so callers can
// query [from, to).
func DateRange(w http.ResponseWriter, r *http.Request) (from, to time.Time, ok bool) {
	q := r.URL.Query()
	if s := q.Get("from"); s != "" {
		d, err := ParseDate(s)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "Tanggal awal tidak valid.")
			return time.Time{}, time.Time{}, false
		}
		from = d
	}
	if s := q.Get("to"); s != "" {
		d, err := ParseDate(s)
		if err != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "Tanggal akhir tidak valid.")
			return time.Time{}, time.Time{}, false
		}
		to = d.AddDate(0, 0, 1)
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		apiutil.WriteError(w, http.StatusBadRequest, "Rentang tanggal tidak valid.")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// Scope returns the caller's admin scope, answering 403 when there is none.
func Scope(w http.ResponseWriter, r *http.Request) (authz.Scope, bool) {
	scope, ok := authz.ScopeFrom(r)
	if !ok {
		apiutil.WriteError(w, http.StatusForbidden, "Akses ditolak.")
		return authz.Scope{}, false
	}
	return scope, true
}

func writeScopeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authz.ErrUnknownEkskul):
		apiutil.WriteError(w, http.StatusBadRequest, "Ekskul tidak dikenal.")
	default:
		apiutil.WriteError(w, http.StatusForbidden, "Anda tidak boleh mengakses data ekskul lain.")
	}
}

// ReadClub resolves the ?ekskul= filter for a list endpoint. "" means every
// club and is only possible for the super admin.
func ReadClub(w http.ResponseWriter, r *http.Request) (string, bool) {
	scope, ok := Scope(w, r)
	if !ok {
		return "", false
	}
	slug, err := authz.ScopeFilter(scope, r.URL.Query().Get("ekskul"))
	if err != nil {
		writeScopeErr(w, err)
		return "", false
	}
	return slug, true
}

// WriteClub resolves the club a write targets. A super admin must name one.
func WriteClub(w http.ResponseWriter, r *http.Request, requested string) (string, bool) {
	scope, ok := Scope(w, r)
	if !ok {
		return "", false
	}
	slug, err := authz.ScopeForWrite(scope, requested)
	if err != nil {
		if errors.Is(err, authz.ErrUnknownEkskul) && strings.TrimSpace(requested) == "" {
			apiutil.WriteJSON(w, http.StatusBadRequest, apiutil.ErrorBody{
				Error:  "Data tidak valid.",
				Fields: []inputval.FieldError{{Field: "ekskulType", Message: "wajib diisi"}},
			})
			return "", false
		}
		writeScopeErr(w, err)
		return "", false
	}
	return slug, true
}

// Owns answers 404 when the record's club is outside the caller's scope, so
// a club admin cannot even confirm another club's ids exist.
func Owns(w http.ResponseWriter, r *http.Request, recordClub string) bool {
	scope, ok := Scope(w, r)
	if !ok {
		return false
	}
	if !scope.Allows(recordClub) {
		apiutil.WriteError(w, http.StatusNotFound, "Data tidak ditemukan.")
		return false
	}
	return true
}

// ObjectID reads the {id} URL parameter.
func ObjectID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "ID tidak valid.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// Decode reads a JSON body and validates it with inputval. Failures are
// answered with 400 and the per-field messages.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := apiutil.DecodeJSON(r, dst); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Format data tidak valid.")
		return false
	}
	return Validate(w, dst)
}

// Validate runs inputval on v and answers 400 on failure.
func Validate(w http.ResponseWriter, v any) bool {
	err := inputval.Struct(v)
	if err == nil {
		return true
	}
	var ve *inputval.Errors
	if errors.As(err, &ve) {
		apiutil.WriteJSON(w, http.StatusBadRequest, apiutil.ErrorBody{Error: "Data tidak valid.", Fields: ve.Fields})
		return false
	}
	apiutil.WriteError(w, http.StatusBadRequest, "Data tidak valid.")
	return false
}

// NotFound answers 404 with the standard message.
func NotFound(w http.ResponseWriter) {
	apiutil.WriteError(w, http.StatusNotFound, "Data tidak ditemukan.")
}

// Deleted answers a successful delete.
func Deleted(w http.ResponseWriter) {
	apiutil.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
