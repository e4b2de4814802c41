package status

import "testing"

func TestBOMMatchIsOK(t *testing.T) {
	st := Evaluate(Signals{
		BOMVersion:    "1.0.0",
		NewestRelease: "1.0.0",
		ReleaseTime:   20230101000000,
		LastSnapshot:  20230101120000,
	})
	if !st.BOMOK {
		t.Fatalf("expected bomOK for matching versions, got %+v", st)
	}
	if !st.Known {
		t.Fatalf("expected known status, got %+v", st)
	}
}

func TestSnapshotWithinThresholdNeedsBump(t *testing.T) {
	st := Evaluate(Signals{
		BOMVersion:    "1.0.0",
		NewestRelease: "1.1.0",
		ReleaseTime:   20230101000000,
		LastSnapshot:  20230102000000,
	})
	if st.BOMOK {
		t.Fatalf("expected bomOK=false for version mismatch")
	}
	if !st.ReleaseOK {
		t.Fatalf("expected releaseOK: snapshot deployed within threshold of release")
	}
	if st.Action != ActionBump {
		t.Fatalf("expected Bump, got %s", st.Action)
	}
}

func TestStaleSnapshotNeedsCut(t *testing.T) {
	st := Evaluate(Signals{
		BOMVersion:    "1.0.0",
		NewestRelease: "1.1.0",
		ReleaseTime:   20230101000000,
		LastSnapshot:  20240101000000,
		HasURL:        true,
	})
	if st.ReleaseOK {
		t.Fatalf("expected releaseOK=false for year-old vetting")
	}
	// Cut takes priority over Bump even though the BOM is behind too.
	if st.Action != ActionCut {
		t.Fatalf("expected Cut, got %s", st.Action)
	}
}

func TestCutRequiresKnownURL(t *testing.T) {
	st := Evaluate(Signals{
		BOMVersion:    "1.0.0",
		NewestRelease: "1.1.0",
		ReleaseTime:   20230101000000,
		LastSnapshot:  20240101000000,
		HasURL:        false,
	})
	if st.Action != ActionBump {
		t.Fatalf("without a source URL there is nowhere to cut from; expected Bump, got %s", st.Action)
	}
}

func TestOverrideAfterSnapshotForcesBOMOK(t *testing.T) {
	st := Evaluate(Signals{
		BOMVersion:    "1.0.0",
		NewestRelease: "1.1.0",
		ReleaseTime:   20230101000000,
		LastSnapshot:  20240101000000,
		Override:      20240201000000,
		HasURL:        true,
	})
	if !st.BOMOK {
		t.Fatalf("manual vetting after the last snapshot must force bomOK")
	}
	if !st.ReleaseOK {
		t.Fatalf("expected releaseOK when vetted after the last snapshot deploy")
	}
	if st.Action != ActionNone {
		t.Fatalf("expected None, got %s", st.Action)
	}
	if st.Vetting != VettingOverride {
		t.Fatalf("expected override vetting, got %d", st.Vetting)
	}
}

func TestAllSignalsAbsentIsUnknown(t *testing.T) {
	st := Evaluate(Signals{
		BOMVersion:    "1.0.0",
		NewestRelease: "",
	})
	if st.Known {
		t.Fatalf("expected unknown status when nothing was ever vetted")
	}
	if st.Action != ActionNone {
		t.Fatalf("unknown rows must not claim Cut or Bump, got %s", st.Action)
	}
	if st.Vetting != VettingNone {
		t.Fatalf("expected VettingNone, got %d", st.Vetting)
	}
}

func TestThresholdBoundary(t *testing.T) {
	base := Signals{
		BOMVersion:    "1.0.0",
		NewestRelease: "1.0.0",
		ReleaseTime:   20230101000000,
	}

	base.LastSnapshot = 20230102000000 // exactly one threshold later
	if st := Evaluate(base); !st.ReleaseOK {
		t.Fatalf("diff equal to threshold must still be OK")
	}

	base.LastSnapshot = 20230102000001
	if st := Evaluate(base); st.ReleaseOK {
		t.Fatalf("diff beyond threshold must flag a needed release")
	}
}

func TestLastVettedIsMaxOfReleaseAndOverride(t *testing.T) {
	cases := []struct {
		release, override, want int64
		vetting                 Vetting
	}{
		{20230101000000, 0, 20230101000000, VettingRelease},
		{20230101000000, 20240101000000, 20240101000000, VettingOverride},
		{20240101000000, 20230101000000, 20240101000000, VettingStaleOverride},
		{0, 20230101000000, 20230101000000, VettingOverride},
	}
	for _, c := range cases {
		st := Evaluate(Signals{
			BOMVersion:    "1.0.0",
			NewestRelease: "1.0.0",
			ReleaseTime:   mavenTS(c.release),
			Override:      mavenTS(c.override),
		})
		if int64(st.LastVetted) != c.want {
			t.Fatalf("release=%d override=%d: lastVetted=%d, want %d",
				c.release, c.override, st.LastVetted, c.want)
		}
		if st.Vetting != c.vetting {
			t.Fatalf("release=%d override=%d: vetting=%d, want %d",
				c.release, c.override, st.Vetting, c.vetting)
		}
	}
}

func TestExactlyOneActionPerComponent(t *testing.T) {
	signals := []Signals{
		{BOMVersion: "1.0.0", NewestRelease: "1.0.0", ReleaseTime: 20230101000000},
		{BOMVersion: "1.0.0", NewestRelease: "1.1.0", ReleaseTime: 20230101000000},
		{BOMVersion: "1.0.0", NewestRelease: "1.1.0", ReleaseTime: 20230101000000, LastSnapshot: 20240101000000, HasURL: true},
		{},
	}
	for i, sig := range signals {
		st := Evaluate(sig)
		if st.Action != ActionCut && st.Action != ActionBump && st.Action != ActionNone {
			t.Fatalf("case %d: unexpected action %d", i, st.Action)
		}
		if st.Action == ActionCut && (!sig.HasURL || st.ReleaseOK) {
			t.Fatalf("case %d: Cut requires a URL and a stale release", i)
		}
		if st.Action == ActionBump && st.BOMOK {
			t.Fatalf("case %d: Bump requires a behind BOM", i)
		}
	}
}

func TestActionSortKeys(t *testing.T) {
	if ActionCut.SortKey() != 1 || ActionBump.SortKey() != 2 || ActionNone.SortKey() != 3 {
		t.Fatalf("action sort keys changed: %d %d %d",
			ActionCut.SortKey(), ActionBump.SortKey(), ActionNone.SortKey())
	}
	if ActionCut.String() != "Cut" || ActionBump.String() != "Bump" || ActionNone.String() != "None" {
		t.Fatalf("action names changed")
	}
}
