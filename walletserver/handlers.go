package main

import (
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/fractionestate/decentralized-did/aggregator"
	"github.com/fractionestate/decentralized-did/bch"
	"github.com/fractionestate/decentralized-did/identity"
)

type handlers struct {
	svc    *identity.Service
	logger *logrus.Logger
}

type fingerCaptureRequest struct {
	FingerID  string `json:"fingerId"`
	Biometric string `json:"biometric"` // hex-encoded 127-bit vector
	UserTag   string `json:"userTag"`
	Quality   int    `json:"quality"`
}

type enrollRequest struct {
	WalletAddress string                 `json:"walletAddress"`
	Fingers       []fingerCaptureRequest `json:"fingers"`
}

func (h *handlers) enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	captures := make([]identity.FingerCapture, 0, len(req.Fingers))
	qualities := make(map[string]int, len(req.Fingers))
	for _, f := range req.Fingers {
		b, err := decodeBiometric(f.Biometric)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		captures = append(captures, identity.FingerCapture{
			FingerID:  f.FingerID,
			Biometric: b,
			UserTag:   []byte(f.UserTag),
		})
		qualities[f.FingerID] = f.Quality
	}

	result, err := h.svc.EnrollWallet(req.WalletAddress, captures, qualities)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	writeJSON(w, http.StatusOK, result.BuildResult.ApiForm)
}

type verifyRequest struct {
	Fingers  []fingerCaptureRequest `json:"fingers"`
	Helpers  map[string]string      `json:"helpers"` // fingerId -> hex-encoded helper blob
	Enrolled int                    `json:"enrolled"`
	Strict   bool                   `json:"strict"`
}

type verifyResponse struct {
	MasterKey   string `json:"masterKey"`
	FingersUsed int    `json:"fingersUsed"`
	Mode        string `json:"mode"`
}

func (h *handlers) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	captures := make([]identity.FingerCapture, 0, len(req.Fingers))
	qualities := make(map[string]int, len(req.Fingers))

	parsedHelpers, err := decodeHelpers(req.Helpers)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	for _, f := range req.Fingers {
		b, err := decodeBiometric(f.Biometric)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		captures = append(captures, identity.FingerCapture{FingerID: f.FingerID, Biometric: b})
		qualities[f.FingerID] = f.Quality
	}

	agg, err := h.svc.VerifyWallet(captures, parsedHelpers, qualities, req.Enrolled, aggregator.Options{Strict: req.Strict})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		MasterKey:   hex.EncodeToString(agg.MasterKey[:]),
		FingersUsed: agg.FingersUsed,
		Mode:        string(agg.Mode),
	})
}

type rotateRequest struct {
	OldMaster    string `json:"oldMaster"`
	OldFingerKey string `json:"oldFingerKey"`
	NewFingerKey string `json:"newFingerKey"`
}

func (h *handlers) rotate(w http.ResponseWriter, r *http.Request) {
	var req rotateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	oldMaster, oldKey, newKey, err := decodeRotateKeys(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rotated := aggregator.Rotate(oldMaster, oldKey, newKey)
	writeJSON(w, http.StatusOK, map[string]string{"masterKey": hex.EncodeToString(rotated[:])})
}

type revokeRequest struct {
	RemainingKeys []string `json:"remainingKeys"`
}

func (h *handlers) revoke(w http.ResponseWriter, r *http.Request) {
	var req revokeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	remaining := make([]aggregator.FingerKey, 0, len(req.RemainingKeys))
	for i, s := range req.RemainingKeys {
		key, err := hex.DecodeString(s)
		if err != nil || len(key) != aggregator.KeySize {
			writeError(w, http.StatusBadRequest, errInvalidRemainingKey(i))
			return
		}
		var fixed [aggregator.KeySize]byte
		copy(fixed[:], key)
		remaining = append(remaining, aggregator.FingerKey{Key: fixed})
	}

	master, err := aggregator.Revoke(remaining)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"masterKey": hex.EncodeToString(master[:])})
}

func decodeBiometric(hexStr string) (*bch.Bits, error) {
	data, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, err
	}
	return bch.BitsFromBytes(data, bch.N)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
