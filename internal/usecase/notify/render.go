package notify

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/notification"
	"aura-inn/internal/pkg/errs"
)

//go:embed templates/*.html templates/text.tmpl
var templateFS embed.FS

var ErrTemplate = errs.New("failed to render notification")

type emailData struct {
	BookingID   int64
	GuestName   string
	Phone       string
	Email       string
	RoomType    string
	CheckIn     string
	CheckOut    string
	Nights      int
	TotalPrice  int64
	AdminURL    string
	LocationURL string
}

// Renderer turns a booking into the subject and bodies for one notification kind.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errs.Wrap(err, "parse html templates")
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/text.tmpl")
	if err != nil {
		return nil, errs.Wrap(err, "parse text templates")
	}
	return &Renderer{html: html, text: text}, nil
}

func (r *Renderer) Render(kind notification.Kind, data emailData) (subject, html, text string, err error) {
	name := kind.String()
	if subject, err = r.execText(name+".subject", data); err != nil {
		return "", "", "", err
	}
	if text, err = r.execText(name+".text", data); err != nil {
		return "", "", "", err
	}
	var buf bytes.Buffer
	if err = r.html.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", "", "", errs.Mark(errs.Wrapf(err, "render %s html", name), ErrTemplate)
	}
	return strings.TrimSpace(subject), buf.String(), text, nil
}

func (r *Renderer) execText(name string, data emailData) (string, error) {
	var buf bytes.Buffer
	if err := r.text.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errs.Mark(errs.Wrapf(err, "render %s", name), ErrTemplate)
	}
	return buf.String(), nil
}

func newEmailData(b *booking.Booking, adminURL, locationURL string) emailData {
	return emailData{
		BookingID:   b.ID(),
		GuestName:   b.GuestName(),
		Phone:       b.Phone(),
		Email:       b.Email(),
		RoomType:    b.RoomType(),
		CheckIn:     b.CheckIn().String(),
		CheckOut:    b.CheckOut().String(),
		Nights:      b.Nights(),
		TotalPrice:  b.TotalPrice(),
		AdminURL:    adminURL,
		LocationURL: locationURL,
	}
}
