package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
)

// envelope mirrors the REST API response wrapper
type envelope struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
	ResponseCode int             `json:"responseCode"`
}

type personData struct {
	PersonID         int64   `json:"personId"`
	Name             string  `json:"name"`
	CurrentRank      *string `json:"currentRank"`
	CurrentDutyTitle *string `json:"currentDutyTitle"`
	CareerStartDate  *string `json:"careerStartDate"`
	CareerEndDate    *string `json:"careerEndDate"`
}

type dutyData struct {
	Rank          string  `json:"rank"`
	DutyTitle     string  `json:"dutyTitle"`
	DutyStartDate string  `json:"dutyStartDate"`
	DutyEndDate   *string `json:"dutyEndDate"`
}

type dutiesData struct {
	Person          personData `json:"person"`
	AstronautDuties []dutyData `json:"astronautDuties"`
}

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	serverURL    string
	response     *http.Response
	responseBody []byte
	envelope     envelope
	authToken    string
	instance     *ServerInstance
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:        tc,
		serverURL: tc.ServerURL,
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.tc.Reset()
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		if s.instance != nil {
			s.instance.Stop()
			s.instance = nil
		}
		return ctx, nil
	})

	// Background steps
	sc.Step(`^an ACTS server is running$`, s.anACTSServerIsRunning)
	sc.Step(`^a person "([^"]*)" exists$`, s.aPersonExists)
	sc.Step(`^"([^"]*)" was assigned "([^"]*)" as "([^"]*)" on (\d{4}-\d{2}-\d{2})$`, s.wasAssigned)

	// Person steps
	sc.Step(`^I create a person "([^"]*)"$`, s.iCreateAPerson)
	sc.Step(`^I update person "([^"]*)" with:$`, s.iUpdatePersonWith)
	sc.Step(`^I request person "([^"]*)"$`, s.iRequestPerson)
	sc.Step(`^I list all people$`, s.iListAllPeople)

	// Duty steps
	sc.Step(`^I assign "([^"]*)" as "([^"]*)" to "([^"]*)" on (\d{4}-\d{2}-\d{2})$`, s.iAssign)
	sc.Step(`^I request the duties of "([^"]*)"$`, s.iRequestTheDutiesOf)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should be successful$`, s.theResponseShouldBeSuccessful)
	sc.Step(`^the response should fail with "([^"]*)"$`, s.theResponseShouldFailWith)
	sc.Step(`^the response data should be null$`, s.theResponseDataShouldBeNull)
	sc.Step(`^the people list should contain "([^"]*)"$`, s.thePeopleListShouldContain)
	sc.Step(`^the duty history should have (\d+) entr(?:y|ies)$`, s.theDutyHistoryShouldHave)
	sc.Step(`^duty (\d+) should be "([^"]*)" from (\d{4}-\d{2}-\d{2}) with no end date$`, s.dutyShouldBeOpen)
	sc.Step(`^duty (\d+) should be "([^"]*)" from (\d{4}-\d{2}-\d{2}) to (\d{4}-\d{2}-\d{2})$`, s.dutyShouldBeClosed)
	sc.Step(`^person "([^"]*)" should have rank "([^"]*)" and duty "([^"]*)"$`, s.personShouldHaveRankAndDuty)
	sc.Step(`^person "([^"]*)" should have career end date (\d{4}-\d{2}-\d{2})$`, s.personShouldHaveCareerEndDate)

	// Audit steps
	sc.Step(`^the audit log should contain an? "([^"]*)" entry from "([^"]*)"$`, s.theAuditLogShouldContain)

	s.registerAuthSteps(sc)
}

// Background steps

func (s *StepsContext) anACTSServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) aPersonExists(name string) error {
	if err := s.iCreateAPerson(name); err != nil {
		return err
	}
	return s.theResponseShouldBeSuccessful()
}

func (s *StepsContext) wasAssigned(name, rank, title, start string) error {
	if err := s.iAssign(rank, title, name, start); err != nil {
		return err
	}
	return s.theResponseShouldBeSuccessful()
}

// Request helpers

func (s *StepsContext) do(method, path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	return s.doRaw(method, path, reader)
}

func (s *StepsContext) doRaw(method, path string, body io.Reader) error {
	req, err := http.NewRequest(method, s.serverURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	if err != nil {
		return err
	}

	s.envelope = envelope{}
	_ = json.Unmarshal(s.responseBody, &s.envelope)
	return nil
}

func personPath(name string) string {
	return "/Person/" + url.PathEscape(name)
}

// Person steps

func (s *StepsContext) iCreateAPerson(name string) error {
	return s.do("POST", "/Person", name)
}

func (s *StepsContext) iUpdatePersonWith(name string, body *godog.DocString) error {
	return s.doRaw("PUT", personPath(name), strings.NewReader(body.Content))
}

func (s *StepsContext) iRequestPerson(name string) error {
	return s.do("GET", personPath(name), nil)
}

func (s *StepsContext) iListAllPeople() error {
	return s.do("GET", "/Person", nil)
}

// Duty steps

func (s *StepsContext) iAssign(rank, title, name, start string) error {
	return s.do("POST", "/AstronautDuty", map[string]string{
		"name":          name,
		"rank":          rank,
		"dutyTitle":     title,
		"dutyStartDate": start,
	})
}

func (s *StepsContext) iRequestTheDutiesOf(name string) error {
	return s.do("GET", "/AstronautDuty/"+url.PathEscape(name), nil)
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldBeSuccessful() error {
	if s.response.StatusCode != http.StatusOK || !s.envelope.Success {
		return fmt.Errorf("expected success, got %d: %s", s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldFailWith(message string) error {
	if s.envelope.Success {
		return fmt.Errorf("expected failure, got %s", string(s.responseBody))
	}
	if !strings.Contains(s.envelope.Message, message) {
		return fmt.Errorf("expected message containing %q, got %q", message, s.envelope.Message)
	}
	if s.envelope.ResponseCode != s.response.StatusCode {
		return fmt.Errorf("responseCode %d does not match status %d", s.envelope.ResponseCode, s.response.StatusCode)
	}
	return nil
}

func (s *StepsContext) theResponseDataShouldBeNull() error {
	if string(s.envelope.Data) != "null" {
		return fmt.Errorf("expected null data, got %s", string(s.envelope.Data))
	}
	return nil
}

func (s *StepsContext) thePeopleListShouldContain(name string) error {
	var people []personData
	if err := json.Unmarshal(s.envelope.Data, &people); err != nil {
		return err
	}
	for _, p := range people {
		if p.Name == name {
			return nil
		}
	}
	return fmt.Errorf("%q not in %s", name, string(s.envelope.Data))
}

func (s *StepsContext) duties() (*dutiesData, error) {
	var data dutiesData
	if err := json.Unmarshal(s.envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode duties: %w: %s", err, string(s.responseBody))
	}
	return &data, nil
}

func (s *StepsContext) theDutyHistoryShouldHave(count int) error {
	data, err := s.duties()
	if err != nil {
		return err
	}
	if len(data.AstronautDuties) != count {
		return fmt.Errorf("expected %d duties, got %d", count, len(data.AstronautDuties))
	}
	return nil
}

func (s *StepsContext) duty(n int) (*dutyData, error) {
	data, err := s.duties()
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(data.AstronautDuties) {
		return nil, fmt.Errorf("no duty %d in %d duties", n, len(data.AstronautDuties))
	}
	return &data.AstronautDuties[n-1], nil
}

func (s *StepsContext) dutyShouldBeOpen(n int, title, start string) error {
	d, err := s.duty(n)
	if err != nil {
		return err
	}
	if d.DutyTitle != title || d.DutyStartDate != start {
		return fmt.Errorf("duty %d is %s from %s", n, d.DutyTitle, d.DutyStartDate)
	}
	if d.DutyEndDate != nil {
		return fmt.Errorf("duty %d ends %s, expected no end date", n, *d.DutyEndDate)
	}
	return nil
}

func (s *StepsContext) dutyShouldBeClosed(n int, title, start, end string) error {
	d, err := s.duty(n)
	if err != nil {
		return err
	}
	if d.DutyTitle != title || d.DutyStartDate != start {
		return fmt.Errorf("duty %d is %s from %s", n, d.DutyTitle, d.DutyStartDate)
	}
	if d.DutyEndDate == nil || *d.DutyEndDate != end {
		return fmt.Errorf("duty %d end date is %v, expected %s", n, d.DutyEndDate, end)
	}
	return nil
}

func (s *StepsContext) fetchPerson(name string) (*personData, error) {
	if err := s.iRequestPerson(name); err != nil {
		return nil, err
	}
	var p *personData
	if err := json.Unmarshal(s.envelope.Data, &p); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("person %q not found", name)
	}
	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *StepsContext) personShouldHaveRankAndDuty(name, rank, title string) error {
	p, err := s.fetchPerson(name)
	if err != nil {
		return err
	}
	if deref(p.CurrentRank) != rank || deref(p.CurrentDutyTitle) != title {
		return fmt.Errorf("person %q is %s/%s", name, deref(p.CurrentRank), deref(p.CurrentDutyTitle))
	}
	return nil
}

func (s *StepsContext) personShouldHaveCareerEndDate(name, end string) error {
	p, err := s.fetchPerson(name)
	if err != nil {
		return err
	}
	if deref(p.CareerEndDate) != end {
		return fmt.Errorf("person %q career end date is %q", name, deref(p.CareerEndDate))
	}
	return nil
}

// Audit steps

func (s *StepsContext) theAuditLogShouldContain(level, source string) error {
	var count int64
	err := s.tc.DB.Table("log_entries").
		Where("level = ? AND source = ?", level, source).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no %s entry from %s in the audit log", level, source)
	}
	return nil
}
