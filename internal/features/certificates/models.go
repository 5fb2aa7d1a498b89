// Package certificates выдаёт годовые сертификаты волонтёра:
// один сертификат на каждый год с часами в профиле.
package certificates

import (
	"fmt"
	"net/url"
	"time"

	"github.com/jishnunambiarr/VolunteerQuest/internal/common"
)

// Organization — от чьего имени выдаётся сертификат.
const Organization = "VolunteerQuest"

// Certificate — сертификат за один год.
type Certificate struct {
	Name     string
	Year     int
	Hours    int
	IssuedOn time.Time
}

// Text рендерит сертификат.
func (c Certificate) Text(loc *time.Location) string {
	return fmt.Sprintf(
		"📜 Certificate of Volunteering\n\n"+
			"This certifies that\n%s\nhas completed\n%s\nof volunteer service in\n%d\n\n"+
			"Issued on %s",
		c.Name, common.FormatHours(c.Hours), c.Year, common.FormatDate(c.IssuedOn, loc),
	)
}

// LinkedInURL — ссылка «Add to LinkedIn» на форму добавления сертификата в профиль.
func (c Certificate) LinkedInURL() string {
	q := url.Values{}
	q.Set("startTask", "CERTIFICATION_NAME")
	q.Set("name", fmt.Sprintf("Certificate of Volunteering %d", c.Year))
	q.Set("organizationName", Organization)
	q.Set("issueYear", fmt.Sprintf("%d", c.IssuedOn.Year()))
	q.Set("issueMonth", fmt.Sprintf("%d", int(c.IssuedOn.Month())))
	return "https://www.linkedin.com/profile/add?" + q.Encode()
}
