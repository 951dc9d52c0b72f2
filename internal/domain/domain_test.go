package domain

import "testing"

func TestTeamColor(t *testing.T) {
	if got := TeamColor("Red Bull"); got != "#3671C6" {
		t.Errorf("expected color %s but found %s", "#3671C6", got)
	}
	// unrecognized teams (historical seasons) get the neutral default
	if got := TeamColor("Brawn"); got != DefaultTeamColor {
		t.Errorf("expected color %s but found %s", DefaultTeamColor, got)
	}
}

func TestIsClassified(t *testing.T) {
	classified := RaceResult{Position: "14", Status: "+1 Lap"}
	if !classified.IsClassified() {
		t.Error("expected a numbered position to be classified")
	}

	retired := RaceResult{Position: PositionDNF, Status: "Gearbox"}
	if retired.IsClassified() {
		t.Error("expected a DNF to be unclassified")
	}
}
