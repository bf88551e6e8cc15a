// Package notify delivers pool invitations and payout decisions to experts.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/app/ds"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var ErrNoPhone = errors.New("recipient has no phone number")

// messageSender is the part of the Twilio REST API the notifier uses.
type messageSender interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// UserDirectory resolves the recipient of a payout decision.
type UserDirectory interface {
	GetUserByID(id uint) (*ds.User, error)
}

// SMS sends notifications as text messages through Twilio.
type SMS struct {
	api   messageSender
	from  string
	users UserDirectory
}

func NewSMS(accountSID, authToken, from string, users UserDirectory) *SMS {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMS{api: client.Api, from: from, users: users}
}

func (s *SMS) NotifyInvite(ctx context.Context, expert ds.User, req ds.Request) error {
	body := fmt.Sprintf("New request %s is open for you (%s). First to accept gets it.",
		req.DisplayID, req.Amount.StringFixed(2))
	if len(req.RequiredSkills) > 0 {
		body += " Skills: " + strings.Join(req.RequiredSkills, ", ") + "."
	}
	return s.send(ctx, expert.Phone, body)
}

func (s *SMS) NotifyPayoutDecision(ctx context.Context, expertID uint, payout ds.PayoutRequest) error {
	expert, err := s.users.GetUserByID(expertID)
	if err != nil {
		return fmt.Errorf("look up expert %d: %w", expertID, err)
	}

	var body string
	switch payout.Status {
	case ds.PayoutApproved:
		body = fmt.Sprintf("Payout #%d of %s was approved.", payout.ID, payout.Amount.StringFixed(2))
	case ds.PayoutRejected:
		body = fmt.Sprintf("Payout #%d of %s was rejected. The requests are available for a new payout.",
			payout.ID, payout.Amount.StringFixed(2))
	default:
		return fmt.Errorf("payout %d is still %s", payout.ID, payout.Status)
	}
	return s.send(ctx, expert.Phone, body)
}

func (s *SMS) send(ctx context.Context, to, body string) error {
	if to == "" {
		return ErrNoPhone
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send sms to %s: %w", to, err)
	}
	if resp.Sid != nil {
		logrus.WithField("sid", *resp.Sid).Debug("sms sent")
	}
	return nil
}

// Log only writes notifications to the log. Used when Twilio is not configured.
type Log struct{}

func (Log) NotifyInvite(_ context.Context, expert ds.User, req ds.Request) error {
	logrus.WithFields(logrus.Fields{
		"request_id": req.ID,
		"expert_id":  expert.ID,
	}).Infof("pool invite for %s", req.DisplayID)
	return nil
}

func (Log) NotifyPayoutDecision(_ context.Context, expertID uint, payout ds.PayoutRequest) error {
	logrus.WithFields(logrus.Fields{
		"payout_id": payout.ID,
		"expert_id": expertID,
	}).Infof("payout %s", payout.Status)
	return nil
}
