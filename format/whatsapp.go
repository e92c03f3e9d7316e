package format

import (
	"fmt"
	"net/url"
)

// whatsAppMessage is the prefilled text for derived click-to-chat links.
const whatsAppMessage = "Hi, I came across your event '%s' scheduled on %s. I would like to request more information. Thank you for your assistance. Best regards,"

// WhatsAppLink builds a wa.me click-to-chat URL for the given phone digits,
// prefilled with an inquiry about the named event.
func WhatsAppLink(phoneDigits, eventName, eventDate string) string {
	if eventDate == "" {
		eventDate = "the listed date"
	}
	message := fmt.Sprintf(whatsAppMessage, eventName, eventDate)
	return "https://wa.me/" + phoneDigits + "?text=" + url.QueryEscape(message)
}
