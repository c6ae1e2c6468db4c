package businessflow

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const (
	subjectUnderReview             = "Account Registration Under Review"
	subjectAccountApproved         = "Account Approved - Activation Code"
	subjectBusinessAccountApproved = "Business Account Approved - Activation Code"
	subjectAccountRejected         = "Account Registration Update"
	subjectPasswordResetCode       = "Password Reset Code"
	subjectNewActivationCode       = "New Activation Code"
)

type emailData struct {
	Name     string
	Business bool
	Code     string
	Validity string
	Reason   string
}

var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "under_review"}}<html><body>
<p>Hello {{.Name}},</p>
<p>Thank you for registering{{if .Business}} your business{{end}}. Your registration is under review.</p>
<p>You will receive an email with your activation code once an administrator approves it.</p>
</body></html>{{end}}

{{define "approved"}}<html><body>
<p>Hello {{.Name}},</p>
<p>Your {{if .Business}}business {{end}}account has been approved.</p>
<p>Your activation code is <strong>{{.Code}}</strong>. It is valid for {{.Validity}}.</p>
<p>Enter it together with your email and password to log in.</p>
</body></html>{{end}}

{{define "rejected"}}<html><body>
<p>Hello {{.Name}},</p>
<p>We are unable to approve your registration at this time.</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
<p>Please contact support if you have any questions.</p>
</body></html>{{end}}

{{define "reset_code"}}<html><body>
<p>Hello {{.Name}},</p>
<p>Your password reset code is <strong>{{.Code}}</strong>. It is valid for {{.Validity}}.</p>
<p>If you did not request a password reset, you can ignore this email.</p>
</body></html>{{end}}

{{define "new_activation_code"}}<html><body>
<p>Hello {{.Name}},</p>
<p>Your new activation code is <strong>{{.Code}}</strong>. It is valid for {{.Validity}}.</p>
<p>Any previously issued activation code no longer works.</p>
</body></html>{{end}}
`))

func renderEmail(name string, data emailData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", name, err)
	}
	return buf.String(), nil
}

func humanDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.String()
}
