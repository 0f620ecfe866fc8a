package test_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ochairo/distpatch/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/distpatch/internal/domain-orchestrators"
	"github.com/ochairo/distpatch/internal/domain/entities"
	"github.com/ochairo/distpatch/internal/domain/services"
	"github.com/ochairo/distpatch/internal/external-adapters/gpg"
	"github.com/ochairo/distpatch/internal/external-adapters/mx"
)

const checksumPropertiesTemplate = `distributionBase=GRADLE_USER_HOME
distributionPath=wrapper/dists
distributionUrl=%s
distributionSha256Sum=%s
zipStoreBase=GRADLE_USER_HOME
zipStorePath=wrapper/dists
`

// serveDistribution starts a server answering the wrapper download path with
// the given payload and returns the full distribution URL.
func serveDistribution(t *testing.T, payload []byte) (*httptest.Server, string) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/distributions/gradle-8.5-bin.zip", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, server.URL + "/distributions/gradle-8.5-bin.zip"
}

// newPatchPipeline wires the real store, rewriter and patch service the same
// way the CLI does.
func newPatchPipeline(out *strings.Builder) *orchestrators.PatchOrchestrator {
	return orchestrators.NewPatchOrchestrator(
		gateways.NewPropertiesStore(),
		mx.NewRewriter(entities.RewriterSettings{}),
		services.NewPatchService(),
		nil,
		out,
		orchestrators.PatchOrchestratorConfig{},
	)
}

// TestEndToEnd_PatchAndVerify patches a wrapper file against a local mirror
// and verifies the recorded checksum against the served distribution
func TestEndToEnd_PatchAndVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	payload := []byte("distribution archive used by the integration tests\n")
	sum := sha256.Sum256(payload)
	sumHex := hex.EncodeToString(sum[:])

	_, distURL := serveDistribution(t, payload)

	binDir := installFakeTool(t, "mx", "#!/bin/sh\necho \""+distURL+"\"\n")
	t.Setenv("PATH", binDir)

	path := writeProperties(t, fmt.Sprintf(checksumPropertiesTemplate, upstreamURL, sumHex))

	var out strings.Builder
	ctx := context.Background()

	result, err := newPatchPipeline(&out).PatchFile(ctx, path)
	if err != nil {
		t.Fatalf("PatchFile failed: %v", err)
	}
	if result.Outcome != entities.OutcomeUpdated {
		t.Fatalf("Expected an updated file, got outcome %v", result.Outcome)
	}

	want := fmt.Sprintf(checksumPropertiesTemplate, distURL, sumHex)
	if content := readFile(t, path); content != want {
		t.Errorf("File was not patched as expected:\n%s", content)
	}

	settings := entities.DefaultSettings().Verify
	settings.Enabled = true

	verifier := orchestrators.NewVerifyOrchestrator(
		gateways.NewDistributionFetcher(settings.FetchTimeout),
		gateways.NewChecksumVerifier(),
		gpg.NewVerifier(),
		settings,
		nil,
		&out,
	)

	if err := verifier.VerifyDistribution(ctx, result); err != nil {
		t.Fatalf("VerifyDistribution failed: %v", err)
	}

	if !strings.Contains(out.String(), "Checksum of "+distURL+" matches distributionSha256Sum") {
		t.Errorf("Expected checksum confirmation in output:\n%s", out.String())
	}

	t.Logf("✅ Patched and verified against %s", distURL)
}

// TestEndToEnd_ChecksumMismatch verifies a tampered distribution is rejected
// after the file has been patched
func TestEndToEnd_ChecksumMismatch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	recorded := sha256.Sum256([]byte("the archive the wrapper file expects"))
	recordedHex := hex.EncodeToString(recorded[:])

	_, distURL := serveDistribution(t, []byte("a different archive entirely"))

	binDir := installFakeTool(t, "mx", "#!/bin/sh\necho \""+distURL+"\"\n")
	t.Setenv("PATH", binDir)

	path := writeProperties(t, fmt.Sprintf(checksumPropertiesTemplate, upstreamURL, recordedHex))

	var out strings.Builder
	ctx := context.Background()

	result, err := newPatchPipeline(&out).PatchFile(ctx, path)
	if err != nil {
		t.Fatalf("PatchFile failed: %v", err)
	}

	settings := entities.DefaultSettings().Verify
	settings.Enabled = true

	verifier := orchestrators.NewVerifyOrchestrator(
		gateways.NewDistributionFetcher(settings.FetchTimeout),
		gateways.NewChecksumVerifier(),
		gpg.NewVerifier(),
		settings,
		nil,
		&out,
	)

	err = verifier.VerifyDistribution(ctx, result)
	if err == nil {
		t.Fatal("Expected a verification error for the mismatched checksum")
	}

	var verifyErr *entities.VerifyError
	if !errors.As(err, &verifyErr) {
		t.Fatalf("Expected a VerifyError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "Verification of "+distURL+" failed") {
		t.Errorf("Unexpected error message: %v", err)
	}

	// The patch itself stays in place, only the verification failed.
	want := fmt.Sprintf(checksumPropertiesTemplate, distURL, recordedHex)
	if content := readFile(t, path); content != want {
		t.Errorf("Patched file changed unexpectedly:\n%s", content)
	}

	t.Logf("✅ Correctly rejected tampered distribution: %v", err)
}

// TestEndToEnd_NothingToVerify reports the computed checksum when the wrapper
// file records none
func TestEndToEnd_NothingToVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	payload := []byte("distribution archive without a recorded checksum\n")
	sum := sha256.Sum256(payload)
	sumHex := hex.EncodeToString(sum[:])

	_, distURL := serveDistribution(t, payload)

	binDir := installFakeTool(t, "mx", "#!/bin/sh\necho \""+distURL+"\"\n")
	t.Setenv("PATH", binDir)

	path := writeProperties(t, wrapperProperties)

	var out strings.Builder
	ctx := context.Background()

	result, err := newPatchPipeline(&out).PatchFile(ctx, path)
	if err != nil {
		t.Fatalf("PatchFile failed: %v", err)
	}

	settings := entities.DefaultSettings().Verify
	settings.Enabled = true

	verifier := orchestrators.NewVerifyOrchestrator(
		gateways.NewDistributionFetcher(settings.FetchTimeout),
		gateways.NewChecksumVerifier(),
		gpg.NewVerifier(),
		settings,
		nil,
		&out,
	)

	if err := verifier.VerifyDistribution(ctx, result); err != nil {
		t.Fatalf("VerifyDistribution failed: %v", err)
	}

	if !strings.Contains(out.String(), "Nothing to verify "+distURL+" against, SHA256 is "+sumHex) {
		t.Errorf("Expected the computed checksum in output:\n%s", out.String())
	}
}

// TestErrorPropagation_MissingKey verifies errors propagate correctly
func TestErrorPropagation_MissingKey(t *testing.T) {
	binDir := installFakeTool(t, "mx", identityScript)
	t.Setenv("PATH", binDir)

	path := writeProperties(t, "distributionBase=GRADLE_USER_HOME\n")

	var out strings.Builder
	_, err := newPatchPipeline(&out).PatchFile(context.Background(), path)

	if err == nil {
		t.Fatal("Expected error for a file without distributionUrl")
	}

	var keyErr *entities.KeyMissingError
	if !errors.As(err, &keyErr) {
		t.Fatalf("Expected a KeyMissingError, got %T: %v", err, err)
	}
	if keyErr.Path != path {
		t.Errorf("Expected path %s in error, got %s", path, keyErr.Path)
	}

	t.Logf("✅ Correctly handled missing key: %v", err)
}
