// Package identity composes the fuzzy extractor, aggregator, and DID
// metadata builder into the end-to-end enrollment and verification
// workflow: biometric vectors in, a DID and a size-bounded metadata
// payload out. It owns no global state; every capability it needs — an
// RNG, helper-blob storage, an optional metrics sink, a logger — is
// injected at construction time.
package identity

import (
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/fractionestate/decentralized-did/aggregator"
	"github.com/fractionestate/decentralized-did/bch"
	"github.com/fractionestate/decentralized-did/didmeta"
	"github.com/fractionestate/decentralized-did/fuzzyextractor"
	"github.com/fractionestate/decentralized-did/metrics"
	"github.com/fractionestate/decentralized-did/storage"
)

// Service is the injected-capability façade over the three core
// subsystems. Construct one with NewService.
type Service struct {
	rng     fuzzyextractor.RNG
	store   storage.HelperStorage
	metrics *metrics.Sink
	logger  *logrus.Logger

	label   int
	network string
}

// Option configures a Service constructed by NewService.
type Option func(*Service)

// WithRNG overrides the default fuzzyextractor.CryptoRNG, primarily for
// tests that need deterministic salts.
func WithRNG(rng fuzzyextractor.RNG) Option {
	return func(s *Service) { s.rng = rng }
}

// WithStorage sets the HelperStorage backend used for external helper
// storage. If never set, EnrollWallet can still be used with inline
// storage only.
func WithStorage(store storage.HelperStorage) Option {
	return func(s *Service) { s.store = store }
}

// WithMetrics attaches an optional metrics sink. A nil sink (the
// default) disables metrics entirely.
func WithMetrics(sink *metrics.Sink) Option {
	return func(s *Service) { s.metrics = sink }
}

// WithLogger overrides the default logrus.Logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithLedger sets the metadata label and ledger network name used by
// EnrollWallet.
func WithLedger(label int, network string) Option {
	return func(s *Service) { s.label = label; s.network = network }
}

// NewService builds a Service with sensible defaults (a crypto RNG, a
// no-op metrics sink, a default logrus logger, mainnet at the default
// ledger label), overridden by any Option passed.
func NewService(opts ...Option) *Service {
	s := &Service{
		rng:     fuzzyextractor.CryptoRNG{},
		logger:  logrus.New(),
		label:   didmeta.DefaultLabel,
		network: didmeta.NetworkMainnet,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FingerCapture is one finger's raw input to enrollment: its identifier,
// the quantized biometric vector from the upstream quantizer, and an
// opaque user tag bound into the derived key's personalization.
type FingerCapture struct {
	FingerID  string
	Biometric *bch.Bits
	UserTag   []byte
}

// EnrolledFinger is the per-finger output of enrollment: the helper blob
// needed later to reproduce the key, and the key itself so it can feed
// the aggregator immediately.
type EnrolledFinger struct {
	FingerID string
	Key      aggregator.FingerKey
	Helper   *fuzzyextractor.HelperBlob
}

// EnrollFinger runs Gen for a single finger capture.
func (s *Service) EnrollFinger(capture FingerCapture, quality int) (EnrolledFinger, error) {
	key, helper, err := fuzzyextractor.Gen(capture.Biometric, capture.UserTag, s.rng)
	if err != nil {
		s.metrics.ObserveEnroll("gen_failure")
		return EnrolledFinger{}, err
	}
	fk, err := aggregator.NewFingerKey(capture.FingerID, key, quality)
	if err != nil {
		s.metrics.ObserveEnroll("invalid_key_length")
		return EnrolledFinger{}, err
	}
	s.metrics.ObserveEnroll("success")
	s.logger.WithFields(logrus.Fields{"finger_id": capture.FingerID}).Debug("finger enrolled")
	return EnrolledFinger{FingerID: capture.FingerID, Key: fk, Helper: helper}, nil
}

// VerifiedFinger is the per-finger output of verification.
type VerifiedFinger struct {
	FingerID string
	Key      aggregator.FingerKey
}

// VerifyFinger runs Rep for a single finger capture against its stored
// helper blob.
func (s *Service) VerifyFinger(capture FingerCapture, helper *fuzzyextractor.HelperBlob, quality int) (VerifiedFinger, error) {
	key, errorsCorrected, err := fuzzyextractor.Rep(capture.Biometric, helper)
	if err != nil {
		s.metrics.ObserveVerify(outcomeFor(err))
		return VerifiedFinger{}, err
	}
	fk, err := aggregator.NewFingerKey(capture.FingerID, key, quality)
	if err != nil {
		s.metrics.ObserveVerify("invalid_key_length")
		return VerifiedFinger{}, err
	}
	s.metrics.ObserveVerify("success")
	s.metrics.ObserveBchCorrection(errorsCorrected)
	return VerifiedFinger{FingerID: capture.FingerID, Key: fk}, nil
}

func outcomeFor(err error) string {
	switch err {
	case fuzzyextractor.ErrIntegrity:
		return "integrity_failure"
	case fuzzyextractor.ErrBchFailure:
		return "bch_failure"
	case fuzzyextractor.ErrVersionUnsupported:
		return "version_unsupported"
	default:
		return "invalid_input"
	}
}

// EnrollmentResult bundles everything produced by a full enrollment: the
// per-finger helper blobs to persist, the aggregated master key, and the
// DID/metadata ready for submission to the ledger.
type EnrollmentResult struct {
	Fingers     []EnrolledFinger
	Aggregation aggregator.AggregationResult
	Did         didmeta.DidIdentifier
	BuildResult didmeta.BuildResult
}

// EnrollWallet runs Gen for every finger capture, aggregates the results
// in full mode (all captures are by definition "verified" at enrollment
// time), derives the DID, and builds the metadata payload. The payload
// stays inline unless it crosses the soft size limit and a HelperStorage
// backend was supplied via WithStorage, in which case the helper data is
// persisted externally instead.
func (s *Service) EnrollWallet(walletAddress string, captures []FingerCapture, qualities map[string]int) (EnrollmentResult, error) {
	if len(captures) == 0 {
		return EnrollmentResult{}, ErrNoFingers
	}

	fingers := make([]EnrolledFinger, 0, len(captures))
	fingerKeys := make([]aggregator.FingerKey, 0, len(captures))
	entries := make([]didmeta.HelperEntry, 0, len(captures))

	for _, c := range captures {
		ef, err := s.EnrollFinger(c, qualities[c.FingerID])
		if err != nil {
			return EnrollmentResult{}, err
		}
		fingers = append(fingers, ef)
		fingerKeys = append(fingerKeys, ef.Key)

		entries = append(entries, didmeta.NewHelperEntry(
			ef.FingerID,
			ef.Helper.Version,
			ef.Helper.Salt[:],
			ef.Helper.Personalization[:],
			ef.Helper.Codeword.Bytes(),
			ef.Helper.Tag[:],
		))
	}

	agg, err := aggregator.Aggregate(fingerKeys, aggregator.Options{Enrolled: len(fingerKeys)})
	if err != nil {
		return EnrollmentResult{}, err
	}

	did, err := didmeta.DeriveDid(s.network, walletAddress, agg.MasterKey[:])
	if err != nil {
		return EnrollmentResult{}, err
	}

	mode := didmeta.AggregationModeString(agg.FingersUsed, len(fingerKeys))
	idHash := didmeta.IdHash(agg.MasterKey[:])

	inline := didmeta.NewBuilder(s.label, walletAddress, idHash)
	inline.WithInlineHelpers(entries).WithAggregation(agg.FingersUsed, mode)
	buildResult, buildErr := inline.Build(did.String())

	// Above the soft size limit, or outright past the hard limit, fall
	// back to external storage rather than fail the enrollment when a
	// HelperStorage backend is available.
	if s.store != nil && (buildErr != nil && errors.Is(buildErr, didmeta.ErrSizeLimitExceeded) || buildErr == nil && buildResult.SoftWarning) {
		blob, marshalErr := json.Marshal(entries)
		if marshalErr != nil {
			return EnrollmentResult{}, wrap(ErrStorageFailure, "marshaling helper data for external storage: %v", marshalErr)
		}
		uri, hash, putErr := s.store.Put(walletAddress, blob)
		if putErr != nil {
			return EnrollmentResult{}, wrap(ErrStorageFailure, "storing helper data externally: %v", putErr)
		}

		external := didmeta.NewBuilder(s.label, walletAddress, idHash)
		external.WithExternalHelper(uri, hash).WithAggregation(agg.FingersUsed, mode)
		buildResult, buildErr = external.Build(did.String())
	}
	if buildErr != nil {
		return EnrollmentResult{}, buildErr
	}

	s.logger.WithFields(logrus.Fields{
		"wallet":  walletAddress,
		"fingers": len(fingers),
		"mode":    agg.Mode,
	}).Info("wallet enrolled")

	return EnrollmentResult{
		Fingers:     fingers,
		Aggregation: agg,
		Did:         did,
		BuildResult: buildResult,
	}, nil
}

// VerifyWallet runs Rep for every supplied finger capture against its
// corresponding stored helper blob, then aggregates under the fallback
// policy using enrolled as the originally-enrolled finger count.
func (s *Service) VerifyWallet(captures []FingerCapture, helpers map[string]*fuzzyextractor.HelperBlob, qualities map[string]int, enrolled int, opts aggregator.Options) (aggregator.AggregationResult, error) {
	if len(captures) == 0 {
		return aggregator.AggregationResult{}, ErrNoFingers
	}
	opts.Enrolled = enrolled

	keys := make([]aggregator.FingerKey, 0, len(captures))
	for _, c := range captures {
		helper, ok := helpers[c.FingerID]
		if !ok {
			return aggregator.AggregationResult{}, wrap(ErrStorageFailure, "no helper blob for finger %q", c.FingerID)
		}
		vf, err := s.VerifyFinger(c, helper, qualities[c.FingerID])
		if err != nil {
			return aggregator.AggregationResult{}, err
		}
		keys = append(keys, vf.Key)
	}

	return aggregator.Aggregate(keys, opts)
}

// RotateFinger replaces one finger's contribution to an existing master
// key, returning the new master key. The caller is responsible for
// re-enrolling the rotated finger (a fresh EnrollFinger call) and
// persisting its new helper blob.
func (s *Service) RotateFinger(oldMaster [aggregator.KeySize]byte, oldKey, newKey aggregator.FingerKey) [aggregator.KeySize]byte {
	return aggregator.Rotate(oldMaster, oldKey.Key, newKey.Key)
}

// RevokeFinger recomputes the master key from the remaining fingers
// after one is permanently removed.
func (s *Service) RevokeFinger(remaining []aggregator.FingerKey) ([aggregator.KeySize]byte, error) {
	return aggregator.Revoke(remaining)
}
