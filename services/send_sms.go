package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const maxSMSPreview = 280

type smsAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioNotifier texts the site owner a short preview of each contact message.
type TwilioNotifier struct {
	api  smsAPI
	from string
	to   string
}

func NewTwilioNotifier(accountSID, authToken, from, to string) (*TwilioNotifier, error) {
	switch {
	case accountSID == "":
		return nil, errs.NewConfigMissingError("TWILIO_ACCOUNT_SID")
	case authToken == "":
		return nil, errs.NewConfigMissingError("TWILIO_AUTH_TOKEN")
	case from == "":
		return nil, errs.NewConfigMissingError("TWILIO_FROM_NUMBER")
	case to == "":
		return nil, errs.NewConfigMissingError("CONTACT_NOTIFY_PHONE")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioNotifier{api: client.Api, from: from, to: to}, nil
}

func (n *TwilioNotifier) Channel() string {
	return "sms"
}

// Notify sends the SMS. The Twilio client takes no context, so an expired
// ctx is only honored before the call.
func (n *TwilioNotifier) Notify(ctx context.Context, message models.InsertContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(smsBody(message))

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		log.Info().Str("messageSid", *resp.Sid).Msg("Successfully sent SMS via Twilio")
	}
	return nil
}

func smsBody(message models.InsertContactMessage) string {
	preview := []rune(message.Message)
	if len(preview) > maxSMSPreview {
		preview = append(preview[:maxSMSPreview], '…')
	}
	return fmt.Sprintf("New contact from %s <%s>: %s", message.Name, message.Email, string(preview))
}
