// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dalemusser/ekskulhub/internal/app/system/authz"
	"github.com/dalemusser/ekskulhub/internal/domain/ekskul"
)

// BaseVM contains common fields for all public page view models.
// Embed this struct in feature-specific view models:
//
//	data := struct {
//	    viewdata.BaseVM
//	    Items []models.Achievement
//	}{BaseVM: viewdata.NewBaseVM(r, "Prestasi")}
type BaseVM struct {
	SiteName string

	IsLoggedIn bool
	IsAdmin    bool
	Role       string
	UserName   string

	Title       string
	CurrentPath string

	// Clubs feeds the navigation menu.
	Clubs []ekskul.Club
}

var siteName atomic.Value

// SetSiteName is called once by bootstrap with the configured school name.
func SetSiteName(name string) {
	siteName.Store(name)
}

// SiteName returns the configured school name.
func SiteName() string {
	if v, ok := siteName.Load().(string); ok && v != "" {
		return v
	}
	return "Ekstrakurikuler Sekolah"
}

// NewBaseVM builds the common view model from the request's session user.
func NewBaseVM(r *http.Request, title string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)
	return BaseVM{
		SiteName:    SiteName(),
		IsLoggedIn:  signedIn,
		IsAdmin:     signedIn && authz.IsAdminRole(role),
		Role:        role,
		UserName:    name,
		Title:       title,
		CurrentPath: r.URL.Path,
		Clubs:       ekskul.All(),
	}
}

var bulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Tanggal formats t as "2 Januari 2006". The zero time formats empty.
func Tanggal(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", t.Day(), bulan[t.Month()-1], t.Year())
}

// Tanggal is available to templates as {{$.Tanggal .Date}}.
func (BaseVM) Tanggal(t time.Time) string { return Tanggal(t) }

// ClubName returns the display name for a club slug, or the slug itself.
func (BaseVM) ClubName(slug string) string {
	if c, ok := ekskul.Lookup(slug); ok {
		return c.Name
	}
	return slug
}
