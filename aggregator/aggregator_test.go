package aggregator

import (
	"errors"
	"testing"
)

func fill(b byte) [KeySize]byte {
	var k [KeySize]byte
	for i := range k {
		k[i] = b
	}
	return k
}

func fk(id string, b byte, quality int) FingerKey {
	return FingerKey{FingerID: id, Key: fill(b), Quality: quality}
}

func TestS5FourFingerFullAggregation(t *testing.T) {
	keys := []FingerKey{fk("k1", 0x11, 90), fk("k2", 0x22, 90), fk("k3", 0x44, 90), fk("k4", 0x88, 90)}
	res, err := Aggregate(keys, Options{Enrolled: 4})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if res.Mode != ModeFull {
		t.Fatalf("mode = %s, want full", res.Mode)
	}
	want := fill(0xFF)
	if res.MasterKey != want {
		t.Fatalf("master key = %x, want %x", res.MasterKey, want)
	}
}

func TestS6ThreeOfFourFallback(t *testing.T) {
	keys := []FingerKey{fk("k1", 0x11, 80), fk("k2", 0x22, 75), fk("k3", 0x44, 72)}
	res, err := Aggregate(keys, Options{Enrolled: 4})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if res.Mode != ModePartial3Of4 {
		t.Fatalf("mode = %s, want partial_3_of_4", res.Mode)
	}
	want := xorAll(keys)
	if res.MasterKey != want {
		t.Fatalf("master key mismatch")
	}
}

func TestS7TwoOfFourRejectedByQuality(t *testing.T) {
	keys := []FingerKey{fk("k1", 0x11, 80), fk("k2", 0x22, 80)}
	_, err := Aggregate(keys, Options{Enrolled: 4})
	if !errors.Is(err, ErrQualityThreshold) {
		t.Fatalf("expected ErrQualityThreshold, got %v", err)
	}
}

func TestTwoOfFourAcceptedWithBackupFactor(t *testing.T) {
	keys := []FingerKey{fk("k1", 0x11, 90), fk("k2", 0x22, 90)}
	res, err := Aggregate(keys, Options{Enrolled: 4, BackupFactorProvided: true})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if res.Mode != ModePartial2Of4 {
		t.Fatalf("mode = %s, want partial_2_of_4", res.Mode)
	}
}

func TestInsufficientFingersHardReject(t *testing.T) {
	keys := []FingerKey{fk("k1", 0x11, 100)}
	_, err := Aggregate(keys, Options{Enrolled: 4})
	if !errors.Is(err, ErrInsufficientFingers) {
		t.Fatalf("expected ErrInsufficientFingers, got %v", err)
	}
}

func TestStrictModeRejectsFallback(t *testing.T) {
	keys := []FingerKey{fk("k1", 0x11, 100), fk("k2", 0x22, 100), fk("k3", 0x44, 100)}
	_, err := Aggregate(keys, Options{Enrolled: 4, Strict: true})
	if !errors.Is(err, ErrStrictModeViolation) {
		t.Fatalf("expected ErrStrictModeViolation, got %v", err)
	}
}

func TestProperty7AggregationIsOrderIndependent(t *testing.T) {
	a := []FingerKey{fk("k1", 0x11, 90), fk("k2", 0x22, 90), fk("k3", 0x44, 90), fk("k4", 0x88, 90)}
	b := []FingerKey{a[3], a[1], a[2], a[0]}

	ra, err := Aggregate(a, Options{Enrolled: 4})
	if err != nil {
		t.Fatalf("aggregate a: %v", err)
	}
	rb, err := Aggregate(b, Options{Enrolled: 4})
	if err != nil {
		t.Fatalf("aggregate b: %v", err)
	}
	if ra.MasterKey != rb.MasterKey {
		t.Fatalf("aggregation is not order-independent")
	}
}

func TestProperty8RotationMatchesReaggregation(t *testing.T) {
	k1, k2, k3, k4 := fk("k1", 0x11, 90), fk("k2", 0x22, 90), fk("k3", 0x44, 90), fk("k4", 0x88, 90)
	full := []FingerKey{k1, k2, k3, k4}
	res, err := Aggregate(full, Options{Enrolled: 4})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	newK2 := fk("k2", 0x55, 90)
	rotated := Rotate(res.MasterKey, k2.Key, newK2.Key)

	reagg := []FingerKey{k1, newK2, k3, k4}
	res2, err := Aggregate(reagg, Options{Enrolled: 4})
	if err != nil {
		t.Fatalf("aggregate after rotation: %v", err)
	}
	if rotated != res2.MasterKey {
		t.Fatalf("rotate(aggregate(...), old, new) != aggregate(rotated set)")
	}
}

func TestRevokeEnforcesTwoFingerFloor(t *testing.T) {
	if _, err := Revoke([]FingerKey{fk("k1", 0x11, 90)}); !errors.Is(err, ErrTooFewRemaining) {
		t.Fatalf("expected ErrTooFewRemaining, got %v", err)
	}
	remaining := []FingerKey{fk("k1", 0x11, 90), fk("k2", 0x22, 90)}
	key, err := Revoke(remaining)
	if err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if key != xorAll(remaining) {
		t.Fatalf("revoke result does not match XOR of remaining keys")
	}
}

func TestNewFingerKeyRejectsWrongLength(t *testing.T) {
	if _, err := NewFingerKey("k1", make([]byte, 10), 90); !errors.Is(err, ErrInvalidKeyLength) {
		t.Fatalf("expected ErrInvalidKeyLength, got %v", err)
	}
	fk, err := NewFingerKey("k1", make([]byte, KeySize), 90)
	if err != nil {
		t.Fatalf("new finger key: %v", err)
	}
	if fk.FingerID != "k1" {
		t.Fatalf("finger id not preserved")
	}
}
