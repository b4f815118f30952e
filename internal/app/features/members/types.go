// internal/app/features/members/types.go
package members

import (
	"time"

	"github.com/dalemusser/ekskulhub/internal/app/features/shared"
	"github.com/dalemusser/ekskulhub/internal/app/system/normalize"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
)

// memberInput is the JSON body of create and update.
type memberInput struct {
	Name       string `json:"name" validate:"required,max=120"`
	StudentID  string `json:"studentId" validate:"max=32"`
	ClassName  string `json:"className" validate:"max=32"`
	EkskulType string `json:"ekskulType" validate:"omitempty,ekskul"`
	Status     string `json:"status" validate:"omitempty,memberstatus"`
	JoinDate   string `json:"joinDate" validate:"omitempty,ymd"`
	Phone      string `json:"phone" validate:"max=32"`
	PhotoURL   string `json:"photoUrl" validate:"omitempty,url"`
}

type listResponse struct {
	Ekskul string          `json:"ekskul,omitempty"`
	Items  []models.Member `json:"items"`
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// apply copies the input onto m. club is the already-authorized club slug.
func (in memberInput) apply(m *models.Member, club string) {
	m.Name = normalize.Name(in.Name)
	m.StudentID = normalize.Name(in.StudentID)
	m.ClassName = normalize.Name(in.ClassName)
	m.EkskulType = club
	m.Phone = normalize.Name(in.Phone)
	m.PhotoURL = in.PhotoURL
	if in.Status != "" {
		m.Status = in.Status
	}
	if m.Status == "" {
		m.Status = models.MemberActive
	}
	if in.JoinDate != "" {
		if d, err := shared.ParseDate(in.JoinDate); err == nil {
			m.JoinDate = d
		}
	}
	if m.JoinDate.IsZero() {
		m.JoinDate = today()
	}
}
