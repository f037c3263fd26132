package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"watog/internal/db"
	"watog/internal/logger"
	"watog/internal/models"
	"watog/internal/utils"
)

const (
	emailCodeLength = 12
	smsCodeLength   = 4

	// CodeTTL is how long a verification code stays redeemable.
	CodeTTL = time.Hour
)

// VerificationService issues and redeems email and SMS verification codes.
// Codes are never consumed; a second redemption fails on the owner's
// verified date instead.
type VerificationService struct {
	store  VerifyStore
	mail   EmailSender
	sms    SMSSender
	domain string
	now    func() time.Time
}

func NewVerificationService(store VerifyStore, mail EmailSender, sms SMSSender, domain string) *VerificationService {
	return &VerificationService{
		store:  store,
		mail:   mail,
		sms:    sms,
		domain: domain,
		now:    time.Now,
	}
}

// EmailLink builds the public redemption link for an email code.
func (s *VerificationService) EmailLink(code string) string {
	return s.domain + "/verify/email/" + code
}

func (s *VerificationService) RequestEmailCode(ctx context.Context, user *models.User) (string, error) {
	code, err := s.issue(ctx, user, models.VerifyTypeEmail, emailCodeLength)
	if err != nil {
		return "", err
	}
	if err := s.mail.SendVerificationEmail(ctx, user.Email, s.EmailLink(code)); err != nil {
		return "", fmt.Errorf("send verification email: %w", err)
	}
	return code, nil
}

func (s *VerificationService) RequestSMSCode(ctx context.Context, user *models.User) (string, error) {
	if user.CellPhone == "" {
		return "", ErrNoCellPhone
	}
	code, err := s.issue(ctx, user, models.VerifyTypeSMS, smsCodeLength)
	if err != nil {
		return "", err
	}
	if err := s.sms.Send(ctx, user.CellPhone, "Your Watog verification code is "+code); err != nil {
		return "", fmt.Errorf("send verification sms: %w", err)
	}
	return code, nil
}

func (s *VerificationService) issue(ctx context.Context, user *models.User, typ string, length int) (string, error) {
	code, err := utils.GenerateRandomCode(length)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	verify := &models.Verify{
		UserID:    user.ID,
		Type:      typ,
		Code:      code,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateVerify(ctx, verify); err != nil {
		return "", fmt.Errorf("save verify: %w", err)
	}

	logger.Log.Infow("verification code issued", "user_id", user.ID, "type", typ)
	return code, nil
}

// RedeemEmail is reached from an emailed link, so the code alone
// identifies the account.
func (s *VerificationService) RedeemEmail(ctx context.Context, code string) (*models.User, error) {
	verify, err := s.find(ctx, code, models.VerifyTypeEmail, nil)
	if err != nil {
		return nil, err
	}
	if s.expired(verify) {
		return nil, ErrExpiredCode
	}

	user, err := s.store.FindUserByID(ctx, verify.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.EmailVerifiedDate != nil {
		return nil, ErrAlreadyVerified
	}

	now := s.now()
	if err := s.store.UpdateUser(ctx, user, map[string]any{"email_verified_date": now}); err != nil {
		return nil, fmt.Errorf("stamp email verified: %w", err)
	}
	user.EmailVerifiedDate = &now
	return user, nil
}

// RedeemSMS only matches codes owned by the caller.
func (s *VerificationService) RedeemSMS(ctx context.Context, code string, user *models.User) (*models.User, error) {
	verify, err := s.find(ctx, code, models.VerifyTypeSMS, &user.ID)
	if err != nil {
		return nil, err
	}
	if s.expired(verify) {
		return nil, ErrExpiredCode
	}
	if user.SmsVerifiedDate != nil {
		return nil, ErrAlreadyVerified
	}

	now := s.now()
	if err := s.store.UpdateUser(ctx, user, map[string]any{"sms_verified_date": now}); err != nil {
		return nil, fmt.Errorf("stamp sms verified: %w", err)
	}
	user.SmsVerifiedDate = &now
	return user, nil
}

func (s *VerificationService) find(ctx context.Context, code, typ string, userID *uint) (*models.Verify, error) {
	if code == "" {
		return nil, ErrInvalidCode
	}
	verify, err := s.store.FindVerify(ctx, code, typ, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("find verify: %w", err)
	}
	return verify, nil
}

func (s *VerificationService) expired(verify *models.Verify) bool {
	return s.now().Sub(verify.CreatedAt) > CodeTTL
}
