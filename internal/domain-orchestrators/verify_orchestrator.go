package orchestrators

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ochairo/distpatch/internal/domain/entities"
	"github.com/ochairo/distpatch/internal/domain/interfaces"
)

// DistributionFetcher interface for downloading distributions
type DistributionFetcher interface {
	FetchDistribution(ctx context.Context, url string) (*entities.Distribution, error)
}

// ChecksumVerifier interface for SHA256 comparison and calculation
type ChecksumVerifier interface {
	VerifyChecksum(ctx context.Context, filePath, expectedSum string) error
	CalculateChecksum(filePath string) (string, error)
}

// SignatureVerifier interface for detached PGP signature checks
type SignatureVerifier interface {
	ImportKeyFromFile(keyPath string) error
	ImportKeysFromURL(ctx context.Context, keysURL string) error
	VerifySignature(ctx context.Context, filePath, sigURL string) error
	GetKeyringSize() int
}

// VerifyOrchestrator downloads the distribution a patched file points at and
// checks it against the recorded checksum and a detached signature
type VerifyOrchestrator struct {
	fetcher    DistributionFetcher
	checksums  ChecksumVerifier
	signatures SignatureVerifier
	settings   entities.VerifySettings
	logger     interfaces.Logger
	out        io.Writer
	keysLoaded bool
}

// NewVerifyOrchestrator creates a new verify orchestrator
func NewVerifyOrchestrator(
	fetcher DistributionFetcher,
	checksums ChecksumVerifier,
	signatures SignatureVerifier,
	settings entities.VerifySettings,
	logger interfaces.Logger,
	out io.Writer,
) *VerifyOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &VerifyOrchestrator{
		fetcher:    fetcher,
		checksums:  checksums,
		signatures: signatures,
		settings:   settings,
		logger:     logger,
		out:        out,
	}
}

// VerifyDistribution fetches the distribution behind the patch result's
// final URL and verifies whatever the configuration allows: the checksum
// when the file records one, the detached signature when a key source is
// configured. With nothing to check against it reports the computed SHA256
// so the caller can pin it.
func (o *VerifyOrchestrator) VerifyDistribution(ctx context.Context, res entities.PatchResult) error {
	url := res.FinalURL()

	dist, err := o.fetcher.FetchDistribution(ctx, url)
	if err != nil {
		return &entities.VerifyError{URL: url, Err: err}
	}
	//nolint:errcheck // Best-effort removal of the downloaded archive
	defer os.Remove(dist.Path)

	o.logger.Debug("fetched distribution",
		interfaces.F("url", url),
		interfaces.F("bytes", dist.Size),
	)

	checked := false

	if o.settings.Checksum && res.Checksum != "" {
		if err := o.checksums.VerifyChecksum(ctx, dist.Path, res.Checksum); err != nil {
			return &entities.VerifyError{URL: url, Err: err}
		}
		fmt.Fprintf(o.out, "Checksum of %s matches %s\n", url, entities.ChecksumKey)
		checked = true
	}

	if o.settings.HasKeySource() {
		if err := o.loadKeys(ctx); err != nil {
			return &entities.VerifyError{URL: url, Err: err}
		}

		sigURL := url + o.settings.SignatureSuffix
		if err := o.signatures.VerifySignature(ctx, dist.Path, sigURL); err != nil {
			return &entities.VerifyError{URL: url, Err: err}
		}
		fmt.Fprintf(o.out, "Signature of %s is valid\n", url)
		checked = true
	}

	if !checked {
		sum, err := o.checksums.CalculateChecksum(dist.Path)
		if err != nil {
			return &entities.VerifyError{URL: url, Err: err}
		}
		fmt.Fprintf(o.out, "Nothing to verify %s against, SHA256 is %s\n", url, sum)
	}

	return nil
}

// loadKeys imports the configured key sources once per run
func (o *VerifyOrchestrator) loadKeys(ctx context.Context) error {
	if o.keysLoaded {
		return nil
	}

	for _, keyFile := range o.settings.GPGKeyFiles {
		if err := o.signatures.ImportKeyFromFile(keyFile); err != nil {
			return err
		}
	}
	if o.settings.GPGKeysURL != "" {
		if err := o.signatures.ImportKeysFromURL(ctx, o.settings.GPGKeysURL); err != nil {
			return err
		}
	}

	o.logger.Debug("imported signing keys",
		interfaces.F("keys", o.signatures.GetKeyringSize()),
	)

	o.keysLoaded = true
	return nil
}
