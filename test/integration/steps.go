package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the server is running$`, s.theServerIsRunning)

	// Account steps
	sc.Step(`^a user "([^"]*)" with password "([^"]*)" is registered$`, s.aUserIsRegistered)
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogIn)

	// Fixture steps write the RBAC graph directly
	sc.Step(`^a role "([^"]*)" exists$`, s.aRoleExists)
	sc.Step(`^role "([^"]*)" grants "([^"]*)"$`, s.roleGrants)
	sc.Step(`^role "([^"]*)" no longer grants "([^"]*)"$`, s.roleNoLongerGrants)
	sc.Step(`^user "([^"]*)" has role "([^"]*)"$`, s.userHasRole)

	// Request steps
	sc.Step(`^I ship order (\d+)$`, s.iShipOrder)
	sc.Step(`^I GET "([^"]*)" without a token$`, s.iGetWithoutToken)
	sc.Step(`^I GET "([^"]*)"$`, s.iGet)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should name required permission "([^"]*)"$`, s.theResponseShouldNameRequiredPermission)

	// Catalog steps
	sc.Step(`^I run the catalog sync again$`, s.iRunTheCatalogSyncAgain)
	sc.Step(`^permission "([^"]*)" exists exactly once$`, s.permissionExistsExactlyOnce)
}

func (s *StepsContext) theServerIsRunning() error {
	resp, err := s.tc.HTTPClient.Get(s.tc.ServerURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned %d", resp.StatusCode)
	}
	return nil
}

func (s *StepsContext) aUserIsRegistered(username, password string) error {
	body := fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":%q}`, username, username, password)
	resp, err := s.tc.HTTPClient.Post(
		s.tc.ServerURL+"/auth/register", "application/json", bytes.NewBufferString(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("register returned %d", resp.StatusCode)
	}
	return nil
}

func (s *StepsContext) iLogIn(username, password string) error {
	body := fmt.Sprintf(`{"email":"%s@example.com","password":%q}`, username, password)
	resp, err := s.tc.HTTPClient.Post(
		s.tc.ServerURL+"/auth/login", "application/json", bytes.NewBufferString(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login returned %d", resp.StatusCode)
	}

	var parsed struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return err
	}
	if parsed.Token == "" {
		return fmt.Errorf("login returned no token")
	}
	s.authToken = parsed.Token
	return nil
}

func (s *StepsContext) aRoleExists(name string) error {
	return s.tc.DB.Exec(
		`INSERT INTO roles (name) VALUES (?) ON CONFLICT DO NOTHING`, name).Error
}

func (s *StepsContext) roleGrants(role, permission string) error {
	return s.tc.DB.Exec(
		`INSERT INTO role_permissions (role_id, permission_id)
		 SELECT r.id, p.id FROM roles r, permissions p
		  WHERE r.name = ? AND p.name = ?
		 ON CONFLICT DO NOTHING`,
		role, permission).Error
}

func (s *StepsContext) roleNoLongerGrants(role, permission string) error {
	return s.tc.DB.Exec(
		`DELETE FROM role_permissions rp
		  USING roles r, permissions p
		  WHERE rp.role_id = r.id AND rp.permission_id = p.id
		    AND r.name = ? AND p.name = ?`,
		role, permission).Error
}

func (s *StepsContext) userHasRole(username, role string) error {
	return s.tc.DB.Exec(
		`INSERT INTO user_roles (user_id, role_id)
		 SELECT u.id, r.id FROM users u, roles r
		  WHERE u.username = ? AND r.name = ?
		 ON CONFLICT DO NOTHING`,
		username, role).Error
}

func (s *StepsContext) iShipOrder(id int) error {
	return s.request("POST", fmt.Sprintf("/orders/%d/ship", id), s.authToken)
}

func (s *StepsContext) iGet(path string) error {
	return s.request("GET", path, s.authToken)
}

func (s *StepsContext) iGetWithoutToken(path string) error {
	return s.request("GET", path, "")
}

func (s *StepsContext) request(method, path, token string) error {
	req, err := http.NewRequest(method, s.tc.ServerURL+path, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d (body: %s)",
			status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldNameRequiredPermission(name string) error {
	var parsed struct {
		Error              string `json:"error"`
		RequiredPermission string `json:"requiredPermission"`
	}
	if err := json.Unmarshal(s.responseBody, &parsed); err != nil {
		return fmt.Errorf("failed to parse response %q: %w", s.responseBody, err)
	}
	if parsed.RequiredPermission != name {
		return fmt.Errorf("expected required permission %q, got %q", name, parsed.RequiredPermission)
	}
	return nil
}

func (s *StepsContext) iRunTheCatalogSyncAgain() error {
	var before int64
	if err := s.tc.DB.Raw(`SELECT COUNT(*) FROM permissions`).Scan(&before).Error; err != nil {
		return err
	}

	if err := s.tc.Syncer.Sync(); err != nil {
		return err
	}

	var after int64
	if err := s.tc.DB.Raw(`SELECT COUNT(*) FROM permissions`).Scan(&after).Error; err != nil {
		return err
	}
	if before != after {
		return fmt.Errorf("second sync changed the catalog: %d -> %d records", before, after)
	}
	return nil
}

func (s *StepsContext) permissionExistsExactlyOnce(name string) error {
	var count int64
	err := s.tc.DB.Raw(`SELECT COUNT(*) FROM permissions WHERE name = ?`, name).Scan(&count).Error
	if err != nil {
		return err
	}
	if count != 1 {
		return fmt.Errorf("expected exactly one %q record, found %d", name, count)
	}
	return nil
}
