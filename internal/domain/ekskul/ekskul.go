// internal/domain/ekskul/ekskul.go

// Package ekskul is the fixed registry of the school's extracurricular clubs.
//
// Every club-scoped record carries an ekskul_type equal to one of these slugs,
// and club admin roles are spelled "<slug>_admin".
package ekskul

import "strings"

// Club describes one extracurricular program.
type Club struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Schedule    string `json:"schedule"` // usual meeting time, shown on the public page
}

// Club slugs.
const (
	Pramuka     = "pramuka"
	Paskibra    = "paskibra"
	PMR         = "pmr"
	Robotik     = "robotik"
	Futsal      = "futsal"
	Basket      = "basket"
	Voli        = "voli"
	Tari        = "tari"
	PaduanSuara = "paduan_suara"
)

var clubs = []Club{
	{
		Slug:        Pramuka,
		Name:        "Pramuka",
		Tagline:     "Satya ku kudarmakan, darma ku kubaktikan",
		Description: "Gerakan kepanduan yang melatih kemandirian, kepemimpinan, dan kecintaan pada alam.",
		Icon:        "tent",
		Schedule:    "Jumat, 14.00 - 16.30",
	},
	{
		Slug:        Paskibra,
		Name:        "Paskibra",
		Tagline:     "Disiplin, tegas, berwibawa",
		Description: "Pasukan pengibar bendera yang membina kedisiplinan dan baris-berbaris.",
		Icon:        "flag",
		Schedule:    "Selasa & Kamis, 15.00 - 17.00",
	},
	{
		Slug:        PMR,
		Name:        "PMR",
		Tagline:     "Siap sedia menolong sesama",
		Description: "Palang Merah Remaja: pertolongan pertama, kesehatan, dan kepalangmerahan.",
		Icon:        "first-aid",
		Schedule:    "Rabu, 14.00 - 16.00",
	},
	{
		Slug:        Robotik,
		Name:        "Robotik",
		Tagline:     "Merancang, memprogram, berkompetisi",
		Description: "Perakitan dan pemrograman robot untuk lomba tingkat daerah hingga nasional.",
		Icon:        "robot",
		Schedule:    "Senin & Kamis, 14.30 - 17.00",
	},
	{
		Slug:        Futsal,
		Name:        "Futsal",
		Tagline:     "Sportif dan kompak",
		Description: "Latihan teknik, taktik, dan fisik untuk turnamen futsal pelajar.",
		Icon:        "ball",
		Schedule:    "Selasa, 15.30 - 17.30",
	},
	{
		Slug:        Basket,
		Name:        "Basket",
		Tagline:     "Satu tim, satu tujuan",
		Description: "Pembinaan bola basket putra dan putri.",
		Icon:        "basketball",
		Schedule:    "Rabu & Jumat, 15.30 - 17.30",
	},
	{
		Slug:        Voli,
		Name:        "Bola Voli",
		Tagline:     "Smash tanpa ragu",
		Description: "Latihan bola voli untuk kompetisi antarsekolah.",
		Icon:        "volleyball",
		Schedule:    "Kamis, 15.30 - 17.30",
	},
	{
		Slug:        Tari,
		Name:        "Seni Tari",
		Tagline:     "Melestarikan budaya lewat gerak",
		Description: "Tari tradisional dan kreasi untuk pentas sekolah dan festival seni.",
		Icon:        "dance",
		Schedule:    "Sabtu, 09.00 - 11.00",
	},
	{
		Slug:        PaduanSuara,
		Name:        "Paduan Suara",
		Tagline:     "Harmoni dalam kebersamaan",
		Description: "Olah vokal dan paduan suara untuk upacara, lomba, dan konser.",
		Icon:        "music",
		Schedule:    "Senin, 14.00 - 16.00",
	},
}

var bySlug = func() map[string]Club {
	m := make(map[string]Club, len(clubs))
	for _, c := range clubs {
		m[c.Slug] = c
	}
	return m
}()

// All returns the clubs in display order. The returned slice is a copy.
func All() []Club {
	out := make([]Club, len(clubs))
	copy(out, clubs)
	return out
}

// Lookup returns the club for slug. Matching is case-insensitive and
// tolerates surrounding whitespace.
func Lookup(slug string) (Club, bool) {
	c, ok := bySlug[Normalize(slug)]
	return c, ok
}

// IsValid reports whether slug names a known club.
func IsValid(slug string) bool {
	_, ok := Lookup(slug)
	return ok
}

// Normalize lowercases and trims a slug; spaces and dashes become underscores
// so "Paduan Suara" and "paduan-suara" both resolve.
func Normalize(slug string) string {
	s := strings.ToLower(strings.TrimSpace(slug))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}
