package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeOTPDeliver is the asynq task type for OTP delivery.
const TypeOTPDeliver = "otp:deliver"

// OTPDeliverPayload is the queued task body for one OTP delivery.
type OTPDeliverPayload struct {
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email"`
	Code         string `json:"code"`
	ExpiresInSec int    `json:"expiresInSec"`
}

// Notifier is the external SMS/email delivery channel. The default
// implementation only logs; real transport lives outside this system.
type Notifier interface {
	SendOTP(phoneNumber, email, code string, expiresIn time.Duration) error
}

// LogNotifier logs outgoing OTP messages instead of delivering them.
type LogNotifier struct {
	Logger *zap.Logger
}

// SendOTP logs the message that a real channel would deliver.
func (n *LogNotifier) SendOTP(phoneNumber, email, code string, expiresIn time.Duration) error {
	n.Logger.Sugar().Infof("Sending OTP %s to phone %s / email %s (expires in %v)", code, phoneNumber, email, expiresIn)
	return nil
}

// QueueDispatcher enqueues OTP deliveries on asynq so dispatch happens
// off the request path. An enqueue failure degrades to synchronous
// delivery through the fallback notifier.
type QueueDispatcher struct {
	Client   *asynq.Client
	Fallback Notifier
	Logger   *zap.Logger
}

// Dispatch enqueues one delivery task.
func (d *QueueDispatcher) Dispatch(phoneNumber, email, code string, expiresIn time.Duration) error {
	payload, err := json.Marshal(OTPDeliverPayload{
		PhoneNumber:  phoneNumber,
		Email:        email,
		Code:         code,
		ExpiresInSec: int(expiresIn.Seconds()),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal otp task: %w", err)
	}

	task := asynq.NewTask(TypeOTPDeliver, payload)
	if _, err := d.Client.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)); err != nil {
		d.Logger.Warn("failed to enqueue otp delivery, sending synchronously", zap.Error(err))
		return d.Fallback.SendOTP(phoneNumber, email, code, expiresIn)
	}
	return nil
}

// DirectDispatcher delivers through the notifier on the request path.
// Used where no queue is configured (and in tests).
type DirectDispatcher struct {
	Notifier Notifier
}

// Dispatch delivers the code synchronously.
func (d *DirectDispatcher) Dispatch(phoneNumber, email, code string, expiresIn time.Duration) error {
	return d.Notifier.SendOTP(phoneNumber, email, code, expiresIn)
}
