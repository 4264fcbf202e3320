// Package mail delivers rendered HTML email.
//
// Callers build a Message and hand it to a Mail implementation. SMTP talks to
// a relay directly, Resend goes through the Resend HTTP API and Log only
// records what would have been sent. NewFromDriver picks one from config.
package mail
