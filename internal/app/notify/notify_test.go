package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"marketplace/internal/app/ds"

	"github.com/shopspring/decimal"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type recordingSender struct {
	sent []twilioApi.CreateMessageParams
	err  error
}

func (r *recordingSender) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.sent = append(r.sent, *params)
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

type users map[uint]ds.User

func (u users) GetUserByID(id uint) (*ds.User, error) {
	user, ok := u[id]
	if !ok {
		return nil, errors.New("no such user")
	}
	return &user, nil
}

func TestNotifyInvite(t *testing.T) {
	sender := &recordingSender{}
	sms := &SMS{api: sender, from: "+15550000000"}

	req := ds.Request{DisplayID: "REQ-0000000007", Amount: decimal.NewFromInt(500), RequiredSkills: []string{"tax", "audit"}}
	if err := sms.NotifyInvite(context.Background(), ds.User{ID: 3, Phone: "+15551112222"}, req); err != nil {
		t.Fatalf("NotifyInvite: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	msg := sender.sent[0]
	if *msg.To != "+15551112222" || *msg.From != "+15550000000" {
		t.Errorf("to/from = %s/%s", *msg.To, *msg.From)
	}
	for _, want := range []string{"REQ-0000000007", "500.00", "tax, audit"} {
		if !strings.Contains(*msg.Body, want) {
			t.Errorf("body %q does not mention %q", *msg.Body, want)
		}
	}
}

func TestNotifyWithoutPhone(t *testing.T) {
	sms := &SMS{api: &recordingSender{}}

	err := sms.NotifyInvite(context.Background(), ds.User{ID: 3}, ds.Request{})
	if !errors.Is(err, ErrNoPhone) {
		t.Fatalf("err = %v, want ErrNoPhone", err)
	}
}

func TestNotifyPayoutDecision(t *testing.T) {
	sender := &recordingSender{}
	sms := &SMS{api: sender, from: "+15550000000", users: users{4: {ID: 4, Phone: "+15553334444"}}}
	ctx := context.Background()

	tests := []struct {
		status ds.PayoutStatus
		want   string
	}{
		{ds.PayoutApproved, "approved"},
		{ds.PayoutRejected, "rejected"},
	}
	for _, tt := range tests {
		payout := ds.PayoutRequest{ID: 9, Amount: decimal.NewFromInt(240), Status: tt.status}
		if err := sms.NotifyPayoutDecision(ctx, 4, payout); err != nil {
			t.Fatalf("NotifyPayoutDecision(%s): %v", tt.status, err)
		}
		body := *sender.sent[len(sender.sent)-1].Body
		if !strings.Contains(body, tt.want) || !strings.Contains(body, "240.00") {
			t.Errorf("body = %q", body)
		}
	}

	if err := sms.NotifyPayoutDecision(ctx, 4, ds.PayoutRequest{Status: ds.PayoutPending}); err == nil {
		t.Error("pending payout notified")
	}
	if err := sms.NotifyPayoutDecision(ctx, 99, ds.PayoutRequest{Status: ds.PayoutApproved}); err == nil {
		t.Error("unknown expert notified")
	}
}

func TestSendError(t *testing.T) {
	sms := &SMS{api: &recordingSender{err: errors.New("401")}, from: "+1"}

	if err := sms.NotifyInvite(context.Background(), ds.User{Phone: "+2"}, ds.Request{}); err == nil {
		t.Fatal("want error from sender")
	}
}
