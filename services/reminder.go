package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/taskforge/task-tracker/database"
)

const digestDateLayout = "2006-01-02"

var digestTemplate = template.Must(template.New("digest").Parse(`
<h2>Tasks Due Tomorrow ({{.Date}})</h2>
<table border="1" cellpadding="8" cellspacing="0" style="width: 100%; border-collapse: collapse;">
  <thead style="background-color: #f2f2f2;">
    <tr><th>Title</th><th>Description</th><th>Project</th><th>Status</th><th>Deadline</th></tr>
  </thead>
  <tbody>
  {{- range .Rows}}
    <tr>
      <td>{{.Title}}</td>
      <td>{{.Description}}</td>
      <td>{{.Project}}</td>
      <td>{{.Status}}</td>
      <td>{{.Deadline}}</td>
    </tr>
  {{- end}}
  </tbody>
</table>
`))

type digestRow struct {
	Title       string
	Description string
	Project     string
	Status      string
	Deadline    string
}

type digestData struct {
	Date string
	Rows []digestRow
}

// ReminderService implements the deadline digest: find every task due on
// the next calendar day, render them as an HTML table and mail the
// result to the configured recipient.
type ReminderService struct {
	tasks  *database.TaskStore
	mailer Mailer
	loc    *time.Location
}

// NewReminderService builds the job around the configured timezone.
// Every caller hands Run a bare clock reading; the location lives here
// so the cron trigger and the manual trigger cannot disagree on what
// "tomorrow" means.
func NewReminderService(tasks *database.TaskStore, mailer Mailer, loc *time.Location) *ReminderService {
	return &ReminderService{
		tasks:  tasks,
		mailer: mailer,
		loc:    loc,
	}
}

// TargetDate returns the calendar date exactly 24 hours after now,
// without a time-of-day component. The instant is read in the
// configured timezone, so the same moment yields the same date no
// matter which location the caller's clock reported it in.
func (s *ReminderService) TargetDate(now time.Time) string {
	return now.In(s.loc).Add(24 * time.Hour).Format(digestDateLayout)
}

// Run executes one digest pass: query, render, dispatch. The cron
// trigger and the manual /test-send-email trigger both call this.
// Failures are logged and swallowed so neither caller can be crashed by
// storage or transport.
func (s *ReminderService) Run(now time.Time) {
	target := s.TargetDate(now)

	tasks, err := s.tasks.FindDue(target)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch tasks for reminder")
		return
	}
	if len(tasks) == 0 {
		log.Info().Str("date", target).Msg("no tasks due")
		return
	}

	report, err := s.RenderDigest(target, tasks)
	if err != nil {
		log.Error().Err(err).Msg("failed to render digest")
		return
	}

	subject := fmt.Sprintf("Tasks Due Tomorrow (%s)", target)
	if err := s.mailer.Send(subject, report); err != nil {
		log.Error().Err(err).Msg("failed to send reminder email")
		return
	}

	log.Info().Str("date", target).Int("tasks", len(tasks)).Msg("reminder sent")
}

// RenderDigest builds the HTML table, one row per due task. An absent
// description or project name renders as "-".
func (s *ReminderService) RenderDigest(target string, tasks []database.DueTask) (string, error) {
	rows := make([]digestRow, 0, len(tasks))
	for _, t := range tasks {
		row := digestRow{
			Title:       t.Title,
			Description: t.Description,
			Project:     "-",
			Status:      t.Status,
			Deadline:    t.Deadline,
		}
		if row.Description == "" {
			row.Description = "-"
		}
		if t.ProjectName != nil && *t.ProjectName != "" {
			row.Project = *t.ProjectName
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, digestData{Date: target, Rows: rows}); err != nil {
		return "", fmt.Errorf("failed to execute digest template: %w", err)
	}

	return buf.String(), nil
}
