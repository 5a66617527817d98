package service

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"fintrack/advisor"
	"fintrack/config"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled 邮件服务未启用
var ErrEmailDisabled = errors.New("邮件服务未启用，请配置 email.enabled=true")

// Mailer 投递一封已组装好的邮件
type Mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService 邮件服务
type EmailService struct {
	cfg    *config.EmailConfig
	mailer Mailer
}

// NewEmailService 创建邮件服务，使用 SMTP 投递
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return NewEmailServiceWithMailer(cfg, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password))
}

// NewEmailServiceWithMailer 指定投递方式
func NewEmailServiceWithMailer(cfg *config.EmailConfig, mailer Mailer) *EmailService {
	return &EmailService{cfg: cfg, mailer: mailer}
}

// Enabled 是否已启用
func (s *EmailService) Enabled() bool {
	return s.cfg.Enabled
}

// SendMonthlyDigest 发送月度财务摘要，附带当月建议
func (s *EmailService) SendMonthlyDigest(toEmail, name string, summary advisor.Summary, currencySymbol string) error {
	if !s.cfg.Enabled {
		return ErrEmailDisabled
	}

	subject := fmt.Sprintf("[FinTrack] %s monthly digest", summary.Month)
	body := s.generateDigestBody(name, summary, currencySymbol)
	return s.sendEmail(toEmail, subject, body)
}

// generateDigestBody 生成摘要邮件内容
func (s *EmailService) generateDigestBody(name string, summary advisor.Summary, symbol string) string {
	var recs strings.Builder
	if len(summary.Recommendations) == 0 {
		recs.WriteString(`<p class="muted">No recommendations this month.</p>`)
	}
	for _, r := range summary.Recommendations {
		fmt.Fprintf(&recs, `<div class="rec %s"><strong>%s</strong><p>%s</p></div>`,
			html.EscapeString(string(r.Type)), html.EscapeString(r.Title), html.EscapeString(r.Message))
	}

	var cats strings.Builder
	for _, ct := range summary.CategoryBreakdown {
		fmt.Fprintf(&cats, "<tr><td>%s</td><td>%s%.2f</td><td>%.1f%%</td></tr>",
			html.EscapeString(string(ct.Category)), symbol, ct.Total, ct.Percentage)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; }
        .header { background: linear-gradient(135deg, #059669, #047857); color: white; padding: 30px; text-align: center; }
        .content { padding: 30px; color: #333; line-height: 1.6; }
        .score { font-size: 40px; font-weight: 700; color: #059669; }
        table { width: 100%%; border-collapse: collapse; }
        td { padding: 6px 0; border-bottom: 1px solid #eee; }
        .rec { border-left: 4px solid #2563eb; padding: 8px 12px; margin: 10px 0; background: #f8fafc; }
        .rec.warning { border-color: #f59e0b; }
        .rec.danger { border-color: #dc2626; }
        .rec.success { border-color: #059669; }
        .muted { color: #6c757d; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>FinTrack %s</h1></div>
        <div class="content">
            <p>Hi <strong>%s</strong>,</p>
            <p>Financial health score</p>
            <p class="score">%d / 100</p>
            <table>
                <tr><td>Income</td><td>%s%.2f</td></tr>
                <tr><td>Expenses</td><td>%s%.2f</td></tr>
                <tr><td>Savings</td><td>%s%.2f (%.1f%%)</td></tr>
                <tr><td>Top category</td><td>%s</td></tr>
            </table>
            <h3>Spending by category</h3>
            <table>%s</table>
            <h3>Recommendations</h3>
            %s
        </div>
        <div class="footer"><p>This email was sent automatically. Please do not reply.</p></div>
    </div>
</body>
</html>
`, html.EscapeString(summary.Month), html.EscapeString(name), summary.HealthScore,
		symbol, summary.TotalIncome, symbol, summary.TotalExpenses, symbol, summary.Savings, summary.SavingsRate,
		html.EscapeString(summary.TopCategory), cats.String(), recs.String())
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.From, "FinTrack"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.mailer.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.cfg.Enabled {
		return ErrEmailDisabled
	}

	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>Email configuration works</h2>
    <p>If you received this message, FinTrack can deliver monthly digests.</p>
</body>
</html>
`
	return s.sendEmail(toEmail, "[FinTrack] Email configuration test", body)
}
