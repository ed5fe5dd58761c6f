package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/merchant-in-go/pkg/service"
)

var placeholder = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	server       *ServerInstance
	client       *http.Client
	response     *http.Response
	responseBody []byte
	ids          map[string]int64
	reindexed    []service.ReindexStats
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:     tc,
		client: &http.Client{},
		ids:    make(map[string]int64),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		if s.server != nil {
			s.server.Stop()
		}
		return ctx, nil
	})

	sc.Step(`^the merchant service is running$`, s.theMerchantServiceIsRunning)

	// Request steps
	sc.Step(`^I (POST|PUT) "([^"]*)" with:$`, s.iSendWithBody)
	sc.Step(`^I (GET|DELETE) "([^"]*)"$`, s.iSend)
	sc.Step(`^I remember the response id as "([^"]*)"$`, s.iRememberTheResponseID)
	sc.Step(`^I rebuild the search mirror$`, s.iRebuildTheSearchMirror)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, s.theResponseHeaderShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)
	sc.Step(`^the response should list (\d+) items?$`, s.theResponseShouldListItems)
	sc.Step(`^the response should list "([^"]*)" values "([^"]*)"$`, s.theResponseShouldListValues)
	sc.Step(`^the search mirror should report (\d+) indexed rows?$`, s.theSearchMirrorShouldReport)
}

func (s *StepsContext) theMerchantServiceIsRunning(ctx context.Context) error {
	si, err := StartServer(ctx, s.tc)
	if err != nil {
		return err
	}
	s.server = si
	return nil
}

// expand replaces {name} with a remembered id
func (s *StepsContext) expand(text string) (string, error) {
	var missing []string
	out := placeholder.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1 : len(m)-1]
		id, ok := s.ids[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return strconv.FormatInt(id, 10)
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("no remembered id for %s", strings.Join(missing, ", "))
	}
	return out, nil
}

func (s *StepsContext) do(method, path string, body io.Reader) error {
	path, err := s.expand(path)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(method, s.server.ServerURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	s.response, err = s.client.Do(req)
	if err != nil {
		return err
	}
	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

func (s *StepsContext) iSendWithBody(method, path string, body *godog.DocString) error {
	content, err := s.expand(body.Content)
	if err != nil {
		return err
	}
	return s.do(method, path, strings.NewReader(content))
}

func (s *StepsContext) iSend(method, path string) error {
	return s.do(method, path, nil)
}

func (s *StepsContext) iRememberTheResponseID(name string) error {
	var body struct {
		ID *int64 `json:"id"`
	}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return fmt.Errorf("response is not an object: %w: %s", err, s.responseBody)
	}
	if body.ID == nil {
		return fmt.Errorf("response has no id: %s", s.responseBody)
	}
	s.ids[name] = *body.ID
	return nil
}

func (s *StepsContext) iRebuildTheSearchMirror(ctx context.Context) error {
	stats, err := s.server.App.Reindex(ctx, 2)
	s.reindexed = stats
	return err
}

func (s *StepsContext) theResponseStatusShouldBe(code int) error {
	if s.response.StatusCode != code {
		return fmt.Errorf("expected status %d, got %d: %s", code, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseHeaderShouldBe(name, expected string) error {
	expected, err := s.expand(expected)
	if err != nil {
		return err
	}
	if got := s.response.Header.Get(name); got != expected {
		return fmt.Errorf("expected header %s to be %q, got %q", name, expected, got)
	}
	return nil
}

func (s *StepsContext) theResponseFieldShouldBe(field, expected string) error {
	expected, err := s.expand(expected)
	if err != nil {
		return err
	}
	var body map[string]any
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return fmt.Errorf("response is not an object: %w: %s", err, s.responseBody)
	}
	if got := fmt.Sprint(body[field]); got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", field, expected, got)
	}
	return nil
}

func (s *StepsContext) list() ([]map[string]any, error) {
	var items []map[string]any
	if err := json.Unmarshal(s.responseBody, &items); err != nil {
		return nil, fmt.Errorf("response is not a list: %w: %s", err, s.responseBody)
	}
	return items, nil
}

func (s *StepsContext) theResponseShouldListItems(n int) error {
	items, err := s.list()
	if err != nil {
		return err
	}
	if len(items) != n {
		return fmt.Errorf("expected %d items, got %d: %s", n, len(items), s.responseBody)
	}
	return nil
}

// theResponseShouldListValues checks the field of every listed item, in order,
// against a comma separated list.
func (s *StepsContext) theResponseShouldListValues(field, expected string) error {
	items, err := s.list()
	if err != nil {
		return err
	}
	got := make([]string, len(items))
	for i, item := range items {
		got[i] = fmt.Sprint(item[field])
	}
	if strings.Join(got, ",") != expected {
		return fmt.Errorf("expected %s values %q, got %q", field, expected, strings.Join(got, ","))
	}
	return nil
}

func (s *StepsContext) theSearchMirrorShouldReport(n int) error {
	total := 0
	for _, st := range s.reindexed {
		total += st.Indexed
		if st.Failed > 0 {
			return fmt.Errorf("%d mirror writes failed for %s", st.Failed, st.Entity)
		}
	}
	if total != n {
		return fmt.Errorf("expected %d indexed rows, got %d", n, total)
	}
	return nil
}
