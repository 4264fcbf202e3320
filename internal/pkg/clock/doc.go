// Package clock supplies the time source for message headers such as Date.
package clock
