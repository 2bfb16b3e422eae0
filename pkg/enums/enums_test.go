package enums

import "testing"

func TestAvailabilityRankFollowsDeclaredOrder(t *testing.T) {
	if !(AvailabilityAvailable.Rank() < AvailabilityComing.Rank() && AvailabilityComing.Rank() < AvailabilityDiscontinued.Rank()) {
		t.Fatalf("unexpected ranks: %d %d %d", AvailabilityAvailable.Rank(), AvailabilityComing.Rank(), AvailabilityDiscontinued.Rank())
	}
	if Availability("Sold out").Rank() != -1 {
		t.Fatal("unknown availability should rank -1")
	}
}

func TestParseAvailability(t *testing.T) {
	got, err := ParseAvailability(" coming ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != AvailabilityComing {
		t.Fatalf("expected Coming got %s", got)
	}
	if _, err := ParseAvailability("preorder"); err == nil {
		t.Fatal("expected error for unknown availability")
	}
}

func TestAvailabilitiesReturnsCopy(t *testing.T) {
	values := Availabilities()
	values[0] = AvailabilityDiscontinued
	if Availabilities()[0] != AvailabilityAvailable {
		t.Fatal("declared order was mutated")
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("ADMIN")
	if err != nil || role != RoleAdmin {
		t.Fatalf("expected admin got %q err=%v", role, err)
	}
	if _, err := ParseRole("owner"); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if Role("").IsValid() {
		t.Fatal("empty role should be invalid")
	}
}
