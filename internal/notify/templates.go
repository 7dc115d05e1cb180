package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Email is a rendered message ready for Send.
type Email struct {
	Subject string
	Body    string
}

var funcs = template.FuncMap{
	"date": formatDate,
	"lines": func(s string) template.HTML {
		escaped := template.HTMLEscapeString(s)
		return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
	},
}

// formatDate renders 2025-06-10 as June 10, 2025. Unparsable values are returned unchanged.
func formatDate(s string) string {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return s
}

var templates = template.Must(template.New("emails").Funcs(funcs).Parse(`
{{define "otp"}}<p>Your OTP code is: <strong>{{.Code}}</strong></p>{{end}}

{{define "access"}}<p>Your verification code is <strong>{{.Code}}</strong>. It will expire in {{.Minutes}} minutes.</p>{{end}}

{{define "admin_booking"}}<div style="font-family: Arial, sans-serif; max-width: 600px;">
<h2 style="color: #b8860b;">New Booking Request</h2>
<p><strong>Booking ID:</strong> {{.ID}}</p>
<p><strong>Guest:</strong> {{.Name}} ({{.Email}})</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
{{if .IqamaNumber}}<p><strong>Iqama:</strong> {{.IqamaNumber}}</p>{{end}}
<p><strong>Room:</strong> {{.Room}}</p>
<p><strong>Dates:</strong> {{date .Checkin}} to {{date .Checkout}}</p>
<p><strong>Status:</strong> <span style="color: #ffc107;">Pending Approval</span></p>
<div style="margin-top: 20px; padding: 15px; background: #f8f9fa; border-radius: 5px;">
<p><strong>Special Requests:</strong></p>
<p>{{if .SpecialRequests}}{{lines .SpecialRequests}}{{else}}None{{end}}</p>
</div>
{{if .AdminURL}}<p style="margin-top: 20px;"><a href="{{.AdminURL}}/bookings/{{.ID}}" style="background: #b8860b; color: white; padding: 10px 15px; text-decoration: none; border-radius: 4px;">Review Booking</a></p>{{end}}
</div>{{end}}

{{define "guest_booking"}}<div style="font-family: Arial, sans-serif; max-width: 600px;">
<h2 style="color: #b8860b;">Booking Request Received</h2>
<p>Dear {{.Name}},</p>
<p>Thank you for your booking request at {{.Hotel}}.</p>
<div style="margin: 20px 0; padding: 15px; border-left: 4px solid #b8860b; background: #f8f9fa;">
<p><strong>Booking Reference:</strong> #{{.ID}}</p>
<p><strong>Room Type:</strong> {{.Room}}</p>
<p><strong>Dates:</strong> {{date .Checkin}} - {{date .Checkout}}</p>
<p><strong>Status:</strong> Pending Approval</p>
</div>
<p>We're currently reviewing your request and will notify you via email once it's processed.</p>
{{if .ContactPhone}}<p>For any questions, please reply to this email or contact us at {{.ContactPhone}}.</p>{{end}}
<p>Best regards,<br>The {{.Hotel}} Team</p>
</div>{{end}}

{{define "contact_admin"}}<h2>New Message</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Message:</strong></p>
<p>{{lines .Message}}</p>{{end}}

{{define "contact_guest"}}<p>Hi {{.Name}},</p>
<p>Thank you for your message. We will reply soon.</p>
<blockquote>{{lines .Message}}</blockquote>
<p>Sincerely,<br/>{{.Hotel}}</p>{{end}}
`))

func render(name, subject string, data any) (Email, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return Email{}, fmt.Errorf("err when rendering %s email: %w", name, err)
	}
	return Email{Subject: subject, Body: buf.String()}, nil
}

type Renderer struct {
	Hotel        string
	AdminURL     string
	ContactPhone string
}

func (r Renderer) OTP(code string) (Email, error) {
	return render("otp", fmt.Sprintf("Your %s Booking OTP", r.Hotel), struct{ Code string }{code})
}

func (r Renderer) AccessCode(code string, ttl time.Duration) (Email, error) {
	return render("access", "Your Booking Verification Code", struct {
		Code    string
		Minutes int
	}{code, int(ttl.Minutes())})
}

// BookingDetails is what both booking emails are rendered from.
type BookingDetails struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	IqamaNumber     string
	Room            string
	Checkin         string
	Checkout        string
	SpecialRequests string
}

func (r Renderer) AdminBooking(b BookingDetails) (Email, error) {
	return render("admin_booking", fmt.Sprintf("New Booking Request #%s", b.ID), struct {
		BookingDetails
		AdminURL string
	}{b, r.AdminURL})
}

func (r Renderer) GuestBooking(b BookingDetails) (Email, error) {
	return render("guest_booking", "Your Booking Request Has Been Received", struct {
		BookingDetails
		Hotel        string
		ContactPhone string
	}{b, r.Hotel, r.ContactPhone})
}

type ContactDetails struct {
	Name    string
	Email   string
	Message string
}

func (r Renderer) ContactAdmin(c ContactDetails) (Email, error) {
	return render("contact_admin", fmt.Sprintf("New Contact from %s", c.Name), c)
}

func (r Renderer) ContactGuest(c ContactDetails) (Email, error) {
	return render("contact_guest", fmt.Sprintf("Thank you for contacting %s", r.Hotel), struct {
		ContactDetails
		Hotel string
	}{c, r.Hotel})
}
