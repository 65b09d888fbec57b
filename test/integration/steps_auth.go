package integration

import (
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
)

func (s *StepsContext) registerAuthSteps(sc *godog.ScenarioContext) {
	sc.Step(`^an ACTS server that requires authentication is running$`, s.anAuthServerIsRunning)
	sc.Step(`^I have a valid token for "([^"]*)"$`, s.iHaveAValidTokenFor)
	sc.Step(`^I have an expired token for "([^"]*)"$`, s.iHaveAnExpiredTokenFor)
	sc.Step(`^I have a token for "([^"]*)" signed with the wrong secret$`, s.iHaveATokenSignedWithTheWrongSecret)
	sc.Step(`^the audit log should record user "([^"]*)" for "([^"]*)"$`, s.theAuditLogShouldRecordUser)
}

func (s *StepsContext) anAuthServerIsRunning() error {
	instance, err := StartServer(s.tc, ServerConfig{AuthRequired: true})
	if err != nil {
		return err
	}
	s.instance = instance
	s.serverURL = instance.ServerURL
	return nil
}

func signToken(subject string, expiresAt time.Time, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	return token.SignedString(secret)
}

func (s *StepsContext) iHaveAValidTokenFor(subject string) error {
	token, err := signToken(subject, time.Now().Add(time.Hour), jwtSecret)
	s.authToken = token
	return err
}

func (s *StepsContext) iHaveAnExpiredTokenFor(subject string) error {
	token, err := signToken(subject, time.Now().Add(-time.Hour), jwtSecret)
	s.authToken = token
	return err
}

func (s *StepsContext) iHaveATokenSignedWithTheWrongSecret(subject string) error {
	token, err := signToken(subject, time.Now().Add(time.Hour), []byte("not-the-secret"))
	s.authToken = token
	return err
}

func (s *StepsContext) theAuditLogShouldRecordUser(userID, source string) error {
	var count int64
	err := s.tc.DB.Table("log_entries").
		Where("user_id = ? AND source = ?", userID, source).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no entry from %s by %s in the audit log", source, userID)
	}
	return nil
}
