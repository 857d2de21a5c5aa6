package mail

import "context"

// 送信する1通分
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// 実際の送信手段（SMTP / SES / ログ）
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}
