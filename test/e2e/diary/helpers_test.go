package diary_test

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"testing"
	"time"

	"github.com/aussiebroadwan/reelbook/pkg/diarysdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared helpers for the diary service end-to-end tests.
 * Verification codes are read back from the service's log mailer output.
 */

const (
	testImageName = "reelbook-diary-test:latest"

	tokenSecret   = "e2e-token-secret-0123456789abcdef"
	adminHandle   = "admin"
	adminEmail    = "admin@reelbook.test"
	adminPassword = "Admin123!"
	userPassword  = "Password1"
)

var codePattern = regexp.MustCompile(`verification code is (\d{6})`)

// diaryService is a running container plus an SDK client pointed at it.
type diaryService struct {
	container testcontainers.Container
	client    *diarysdk.SDKClient
}

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Diary Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Diary Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/diary/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

func baseEnv() map[string]string {
	return map[string]string{
		"DIARY_DATABASE_FILE": "/data/diary.db",
		"DIARY_PEPPER_FILE":   "/data/pepper",
		"DIARY_TOKEN_SECRET":  tokenSecret,
		"MAIL_TRANSPORT":      "log",
		"ADMIN_USERNAME":      adminHandle,
		"ADMIN_EMAIL":         adminEmail,
		"ADMIN_PASSWORD":      adminPassword,
		"ENV":                 "test",
		"LOG_LEVEL":           "info",
		"LOG_FORMAT":          "json",
	}
}

// setupDiaryContainer starts the service with relaxed rate limits so tests
// can make many rapid requests.
func setupDiaryContainer(t *testing.T) (*diaryService, func()) {
	t.Helper()

	env := baseEnv()
	for _, tier := range []string{"STRICT", "MODERATE", "LENIENT", "PUBLIC"} {
		env["RATELIMIT_"+tier+"_REQUESTS"] = "1000"
		env["RATELIMIT_"+tier+"_BURST"] = "1000"
	}
	return startContainer(t, env)
}

// setupDiaryContainerWithDefaultRateLimits starts the service with the
// production rate limits. Only the rate limit tests want this.
func setupDiaryContainerWithDefaultRateLimits(t *testing.T) (*diaryService, func()) {
	t.Helper()
	return startContainer(t, baseEnv())
}

func startContainer(t *testing.T, env map[string]string) (*diaryService, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	svc := &diaryService{
		container: container,
		client:    diarysdk.NewSDKClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port())),
	}

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return svc, cleanup
}

// latestCode scans the container logs for the newest verification mail
// sent to email.
func (s *diaryService) latestCode(t *testing.T, email string) string {
	t.Helper()

	logs, err := s.container.Logs(t.Context())
	require.NoError(t, err)
	defer func() { _ = logs.Close() }()

	var code string
	scanner := bufio.NewScanner(logs)
	for scanner.Scan() {
		var line struct {
			Msg  string `json:"msg"`
			To   string `json:"to"`
			Body string `json:"body"`
		}
		if json.Unmarshal(scanner.Bytes(), &line) != nil {
			continue
		}
		if line.Msg != "mail_outbound" || line.To != email {
			continue
		}
		if m := codePattern.FindStringSubmatch(line.Body); m != nil {
			code = m[1]
		}
	}
	require.NoError(t, scanner.Err())
	require.NotEmpty(t, code, "no verification mail found for %s", email)
	return code
}

// signUp registers and verifies an account, returning its session.
func (s *diaryService) signUp(t *testing.T, handle string) *diarysdk.Session {
	t.Helper()
	ctx := t.Context()
	email := handle + "@reelbook.test"

	acct, err := s.client.Register(ctx, diarysdk.RegisterRequest{
		Handle:   handle,
		Email:    email,
		Password: userPassword,
	})
	require.NoError(t, err, "register %s", handle)
	require.False(t, acct.Verified)

	session, err := s.client.Verify(ctx, email, s.latestCode(t, email))
	require.NoError(t, err, "verify %s", handle)
	require.True(t, session.Account().Verified)
	return session
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *diarysdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertCode verifies err is an API error with the given code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, diarysdk.IsCode(err, code), "want %s, got: %v", code, err)
}
