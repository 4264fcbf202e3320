package template

import (
	"github.com/banglapremium/mailrelay/internal/email/entity"
	"github.com/banglapremium/mailrelay/internal/pkg/markup"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const orderRefLen = 8

func p(s string) *html.Node  { return markup.El(atom.P, markup.Text(s)) }
func h1(s string) *html.Node { return markup.El(atom.H1, markup.Text(s)) }

func welcome(d *entity.Welcome) *html.Node {
	return markup.El(atom.Div,
		h1("Welcome to Banglapremium, "+d.Name+"!"),
		p("Thank you for joining us. Your account has been created successfully."),
	)
}

func loginNotification(d *entity.LoginNotification) *html.Node {
	return markup.El(atom.Div,
		h1("Login Notification"),
		p("Hello "+d.Name+","),
		p("You logged in to your Banglapremium account at "+d.LoginTime+"."),
		p("If this was not you, please contact support immediately."),
	)
}

func passwordReset(d *entity.PasswordReset) *html.Node {
	return markup.El(atom.Div,
		h1("Reset Your Banglapremium Password"),
		p("You requested a password reset for your Banglapremium account."),
		p("Click the link below to reset your password. This link will expire on "+d.Expires+"."),
		markup.ElAttr(atom.A, []html.Attribute{markup.Attr("href", d.ResetLink)}, markup.Text("Reset Password")),
		p("If you did not request this, please ignore this email."),
	)
}

// broadcast embeds Message unescaped. Callers of this template are trusted.
func (r *Registry) broadcast(d *entity.Broadcast) *html.Node {
	msg := d.Message
	if r.sanitize != nil {
		msg = r.sanitize(msg)
	}
	return markup.El(atom.Div,
		h1(d.Subject),
		markup.El(atom.Div, markup.Raw(msg)),
	)
}

func orderStatusUpdate(d *entity.OrderStatusUpdate) *html.Node {
	return markup.El(atom.Div,
		h1("Order Status Update"),
		p("Hello "+d.UserName+","),
		p("Your order #"+lastRunes(d.Order.ID, orderRefLen)+" status has been updated to: "+d.Status),
		p(d.Message),
		p("Thank you for choosing Banglapremium!"),
	)
}

func productDelivery(d *entity.ProductDelivery) *html.Node {
	name := d.Item.Product.Name
	return markup.El(atom.Div,
		h1("Your Digital Product: "+name),
		p("Congratulations! Your digital product has been delivered."),
		markup.El(atom.H2, markup.Text("Product Details:")),
		markup.El(atom.Ul,
			markup.El(atom.Li, markup.Text("Product: "+name)),
			markup.El(atom.Li, markup.Text("Quantity: "+d.Item.Quantity.String())),
			markup.El(atom.Li, markup.Text("Price: $"+d.Item.Price.String())),
		),
		p("If you have any questions, please contact our support team."),
		p("Thank you for your purchase!"),
	)
}

func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
