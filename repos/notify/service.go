package notify

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	resend "github.com/resend/resend-go/v2"

	leaderboard "github.com/october-classic/classic-live/pkg/leaderboard"
	classic "github.com/october-classic/classic-live/repos/classic"
)

// Service sends the round-submission mails to the trip mailing list.
type Service struct {
	resendClient *resend.Client
	recipients   []string
}

// NewService creates a new empty service.
func NewService() *Service {
	resendKey := os.Getenv("RESEND_KEY")
	var recipients []string
	for _, addr := range strings.Split(os.Getenv("NOTIFY_EMAILS"), ",") {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return &Service{
		resendClient: resend.NewClient(resendKey),
		recipients:   recipients,
	}
}

// SendRoundSubmitted mails the current standings after a round is locked in.
// A missing recipient list just skips the mail; submission never fails on a
// mail problem.
func (s Service) SendRoundSubmitted(ctx context.Context, round classic.Round, entries []leaderboard.Entry) error {
	if len(s.recipients) == 0 {
		log.Printf("No notify recipients configured, skipping submission mail\n")
		return nil
	}

	courseName := "Unknown course"
	if round.Course != nil {
		courseName = round.Course.Name
	}

	params := &resend.SendEmailRequest{
		From:    "scores@octoberclassic.golf",
		To:      s.recipients,
		Subject: fmt.Sprintf("%s at %s is in the books", round.Label, courseName),
		Html:    standingsTemplate(round.Label, courseName, entries),
	}

	_, err := s.resendClient.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send submission mail: %v\n", err)
		return err
	}
	return nil
}

func standingsTemplate(label, courseName string, entries []leaderboard.Entry) string {
	var rows strings.Builder
	for i, entry := range entries {
		rows.WriteString(fmt.Sprintf(
			`<tr><td>%d</td><td>%s</td><td>%d</td></tr>`,
			i+1, entry.Player, entry.Total,
		))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        table {
            width: 100%%;
            border-collapse: collapse;
        }
        th, td {
            padding: 8px;
            border-bottom: 1px solid #ddd;
            text-align: left;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>%s - %s submitted</h2>
        <p>The round has been locked in by the scorer. Standings after this round:</p>
        <table>
            <tr><th>Pos</th><th>Player</th><th>Total</th></tr>
            %s
        </table>
        <p>See the live board for the full breakdown.</p>
    </div>
</body>
</html>`, label, courseName, rows.String())
}
