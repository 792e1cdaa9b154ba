package httpapi

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/services"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("must be a date (YYYY-MM-DD)")
}

func validDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := parseDate(s)
	return err
}

// RegisterPayload is the body of POST /users/register.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Gender   string `json:"gender"`
	Password string `json:"password"`
	Birthday string `json:"birthday"`
}

func (p RegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required, validation.RuneLength(1, 20)),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Gender, validation.Required, validation.In(models.GenderMale, models.GenderFemale, models.GenderOther)),
		// bcrypt ignores input past 72 bytes
		validation.Field(&p.Password, validation.Required, validation.RuneLength(8, 0), validation.Length(0, 72)),
		validation.Field(&p.Birthday, validation.Required, validation.By(validDate)),
	)
}

// Input converts a validated payload.
func (p RegisterPayload) Input() services.RegisterInput {
	birthday, _ := parseDate(p.Birthday)
	return services.RegisterInput{
		UserName: p.Username,
		Email:    p.Email,
		Gender:   p.Gender,
		Password: p.Password,
		Birthday: birthday,
	}
}

type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required),
		validation.Field(&p.Password, validation.Required),
	)
}

type FindPayload struct {
	Email string `json:"email"`
}

func (p FindPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required),
	)
}

// DeliveryPayload is the body of PUT /deliverInfo/:id.
type DeliveryPayload struct {
	RecipientName  string `json:"recipientName"`
	RecipientPhone string `json:"recipientPhone"`
	Address        string `json:"address"`
	City           string `json:"city"`
}

func (p DeliveryPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.RecipientName, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&p.RecipientPhone, validation.Required, is.Digit, validation.Length(8, 15)),
		validation.Field(&p.Address, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&p.City, validation.Required, validation.RuneLength(1, 50)),
	)
}

// UpdatePayload is the body of PUT /updateInformation. Every member is
// optional and interpreted per field by Stage.
type UpdatePayload struct {
	Username     NullableField `json:"username"`
	Email        NullableField `json:"email"`
	Phone        NullableField `json:"phone"`
	Birthday     NullableField `json:"birthday"`
	FromStore    NullableField `json:"from_store"`
	MobilePhone  NullableField `json:"mobile_phone"`
	IntroducedBy NullableField `json:"introduced_by"`
}

// Stage builds the update after validating every field. Nothing is staged
// when any field is invalid.
func (p UpdatePayload) Stage() (*models.UserUpdate, error) {
	upd := &models.UserUpdate{}
	fields := map[string]string{}

	if v, ok, err := p.Username.Text(); err != nil {
		fields["username"] = err.Error()
	} else if ok {
		if err := validation.Validate(v, validation.RuneLength(1, 20)); err != nil {
			fields["username"] = err.Error()
		} else {
			upd.UserName = &v
		}
	}

	if v, ok, err := p.Email.Text(); err != nil {
		fields["email"] = err.Error()
	} else if ok {
		if err := validation.Validate(v, is.Email); err != nil {
			fields["email"] = err.Error()
		} else {
			upd.Email = &v
		}
	}

	if p.Birthday.Set {
		upd.SetBirthday = true
		if v, ok, err := p.Birthday.Text(); err != nil {
			fields["birthday"] = err.Error()
		} else if ok {
			if t, err := parseDate(v); err != nil {
				fields["birthday"] = err.Error()
			} else {
				upd.Birthday = &t
			}
		}
	}

	contacts := []struct {
		name  string
		field NullableField
		dst   **string
	}{
		{"phone", p.Phone, &upd.Phone},
		{"mobile_phone", p.MobilePhone, &upd.MobilePhone},
		{"from_store", p.FromStore, &upd.FromStore},
		{"introduced_by", p.IntroducedBy, &upd.IntroducedBy},
	}
	for _, c := range contacts {
		v, err := c.field.Contact()
		if err != nil {
			fields[c.name] = err.Error()
			continue
		}
		*c.dst = v
	}

	if len(fields) > 0 {
		return nil, newValidationError(fields)
	}
	return upd, nil
}
