package notification

import (
	"fmt"
	"net/smtp"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// EmailNotifier はSMTPで通知メールを送る。
// 送信はベストエフォート。失敗は呼び出し側でログするだけで、
// 注文処理の結果には決して影響させない。
type EmailNotifier struct {
	host string
	port int
	from string
	user string
	pass string
	log  *zap.Logger
}

func NewEmailNotifier(host string, port int, from string, user string, pass string, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{host: host, port: port, from: from, user: user, pass: pass, log: log}
}

func (n *EmailNotifier) OrderCreated(email string, orderNumber string, totalAmount int64) error {
	subject := fmt.Sprintf("Order confirmation %s", orderNumber)
	body := fmt.Sprintf(
		"Thank you for your order!\r\n\r\nOrder number: %s\r\nTotal amount: %d EGP\r\n",
		orderNumber, totalAmount,
	)
	return n.send(email, subject, body, zap.String("order_number", orderNumber))
}

func (n *EmailNotifier) VendorStatusDecision(email string, storeName string, approved bool, reason string) error {
	subject := "Your store application"
	decision := "approved"
	if !approved {
		decision = "rejected"
	}
	body := fmt.Sprintf("Store %q has been %s.\r\n", storeName, decision)
	if reason != "" {
		body += fmt.Sprintf("Reason: %s\r\n", reason)
	}
	return n.send(email, subject, body, zap.String("store_name", storeName))
}

func (n *EmailNotifier) send(to string, subject string, body string, fields ...zap.Field) error {
	// ログ突き合わせ用のイベントID
	eventID := ulid.Make().String()
	fields = append(fields, zap.String("event_id", eventID), zap.String("to", to))

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		n.from, to, subject, body,
	)

	var auth smtp.Auth
	if n.user != "" {
		auth = smtp.PlainAuth("", n.user, n.pass, n.host)
	}

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	if err := smtp.SendMail(addr, auth, n.from, []string{to}, []byte(msg)); err != nil {
		n.log.Error("notification send failed", append(fields, zap.Error(err))...)
		return err
	}

	n.log.Info("notification sent", fields...)
	return nil
}
