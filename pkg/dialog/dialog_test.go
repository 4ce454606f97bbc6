package dialog

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExitCodeTable_Defaults(t *testing.T) {
	table := NewExitCodeTable()

	tests := []struct {
		result Result
		want   int
	}{
		{ResultOK, 0},
		{ResultCancel, 1},
		{ResultHelp, 2},
		{ResultExtra, 3},
		{ResultTimeout, 4},
		{ResultESC, 5},
		{ResultError, 255},
		{ResultLeft1, 6},
		{ResultLeft3, 8},
		{ResultRight1, 9},
		{ResultRight3, 11},
	}

	for _, tt := range tests {
		t.Run(tt.result.String(), func(t *testing.T) {
			if got := table.Code(tt.result); got != tt.want {
				t.Errorf("Code(%s) = %d, want %d", tt.result, got, tt.want)
			}
		})
	}
}

func TestExitCodeTable_OverridesLayerInOrder(t *testing.T) {
	fromEnv := map[Result]int{ResultCancel: 7, ResultESC: 8}
	fromFlags := map[Result]int{ResultCancel: 9}

	table := NewExitCodeTable(fromEnv, fromFlags)

	if got := table.Code(ResultCancel); got != 9 {
		t.Errorf("Code(cancel) = %d, want 9", got)
	}
	if got := table.Code(ResultESC); got != 8 {
		t.Errorf("Code(esc) = %d, want 8", got)
	}
	if got := table.Code(ResultOK); got != 0 {
		t.Errorf("Code(ok) = %d, want 0", got)
	}
}

func TestExitCodeTable_ButtonSlots(t *testing.T) {
	table := NewExitCodeTable(map[Result]int{RightSlot(2): 40})

	if got := table.Code(ResultRight2); got != 40 {
		t.Errorf("Code(right2) = %d, want 40", got)
	}
	if got := table.Code(LeftSlot(2)); got != 7 {
		t.Errorf("Code(left2) = %d, want 7", got)
	}
	if LeftSlot(3) != ResultLeft3 || RightSlot(1) != ResultRight1 {
		t.Errorf("slot results = %s/%s, want left3/right1", LeftSlot(3), RightSlot(1))
	}
	if r, err := ParseResult("RIGHT2"); err != nil || r != ResultRight2 {
		t.Errorf("ParseResult(RIGHT2) = %s, %v", r, err)
	}
	if ResultLeft1.Continues() || ResultLeft1.EmitsOutput() {
		t.Error("left1 should neither continue a chain nor emit output")
	}
	if !strings.Contains(table.String(), "right2=40") {
		t.Errorf("String() = %q, want right2=40", table.String())
	}
}

func TestExitCodeTable_OverrideDoesNotTouchDefaults(t *testing.T) {
	_ = NewExitCodeTable(map[Result]int{ResultOK: 42})
	if DefaultExitCodes[ResultOK] != 0 {
		t.Fatalf("DefaultExitCodes mutated: ok=%d", DefaultExitCodes[ResultOK])
	}
}

func TestParseResult(t *testing.T) {
	for _, r := range AllResults() {
		got, err := ParseResult(r.String())
		if err != nil {
			t.Fatalf("ParseResult(%q) error: %v", r.String(), err)
		}
		if got != r {
			t.Errorf("ParseResult(%q) = %v, want %v", r.String(), got, r)
		}
	}
	if _, err := ParseResult("maybe"); err == nil {
		t.Error("expected error for unknown result")
	}
}

func TestResult_EmitsOutput(t *testing.T) {
	for _, r := range AllResults() {
		want := r == ResultOK || r == ResultExtra
		if got := r.EmitsOutput(); got != want {
			t.Errorf("%s.EmitsOutput() = %v, want %v", r, got, want)
		}
	}
}

func TestCheckArity(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		nargs int
		ok    bool
	}{
		{"msgbox exact", KindMsgBox, 0, true},
		{"msgbox extra", KindMsgBox, 1, false},
		{"inputbox init", KindInputBox, 1, true},
		{"inputbox too many", KindInputBox, 2, false},
		{"menu one item", KindMenu, 3, true},
		{"menu two items", KindMenu, 5, true},
		{"menu no items", KindMenu, 1, false},
		{"menu dangling tag", KindMenu, 4, false},
		{"checklist one item", KindChecklist, 4, true},
		{"checklist partial", KindChecklist, 5, false},
		{"mixedgauge percent only", KindMixedGauge, 1, true},
		{"mixedgauge pairs", KindMixedGauge, 5, true},
		{"mixedgauge missing percent", KindMixedGauge, 0, false},
		{"progress all", KindProgress, 3, true},
		{"progress too many", KindProgress, 4, false},
		{"calendar date", KindCalendar, 3, true},
		{"calendar partial date", KindCalendar, 2, false},
		{"rangebox", KindRangeBox, 3, true},
		{"rangebox short", KindRangeBox, 2, false},
		{"pause", KindPause, 1, true},
		{"pause missing", KindPause, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := make([]string, tt.nargs)
			err := CheckArity(tt.kind, args)
			if tt.ok && err != nil {
				t.Errorf("CheckArity(%s, %d) unexpected error: %v", tt.kind, tt.nargs, err)
			}
			if !tt.ok {
				var usage *UsageError
				if !errors.As(err, &usage) {
					t.Errorf("CheckArity(%s, %d) = %v, want *UsageError", tt.kind, tt.nargs, err)
				}
			}
		})
	}
}

func TestArityMin(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindMsgBox, 0},
		{KindInputBox, 0},
		{KindMenu, 3},
		{KindChecklist, 4},
		{KindMixedGauge, 1},
		{KindProgress, 0},
		{KindCalendar, 0},
		{KindRangeBox, 3},
		{KindPause, 1},
	}
	for _, tt := range tests {
		if got := ArityOf(tt.kind).Min(); got != tt.want {
			t.Errorf("ArityOf(%s).Min() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestConfigDurationsAreMilliseconds(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Timeout() != 0 || cfg.Sleep() != 0 {
		t.Fatalf("defaults = %v/%v, want 0/0", cfg.Timeout(), cfg.Sleep())
	}
	cfg.TimeoutMS = 1500
	cfg.SleepMS = 250
	if got := cfg.Timeout(); got != 1500*time.Millisecond {
		t.Errorf("Timeout() = %v, want 1.5s", got)
	}
	if got := cfg.Sleep(); got != 250*time.Millisecond {
		t.Errorf("Sleep() = %v, want 250ms", got)
	}
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(KindMenu, []string{"Pick", "0", "-1", "4", "a", "Apple"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Kind() != KindMenu {
		t.Errorf("Kind = %v, want menu", req.Kind())
	}
	if req.Rows() != SizeAuto || req.Cols() != SizeMax {
		t.Errorf("size = %dx%d, want %dx%d", req.Rows(), req.Cols(), SizeAuto, SizeMax)
	}
	if req.NArgs() != 3 || req.Arg(1) != "a" {
		t.Errorf("args = %v", req.Args())
	}
	if req.IntArg(0, 0) != 4 {
		t.Errorf("IntArg(0) = %d, want 4", req.IntArg(0, 0))
	}
	if req.IntArg(9, 11) != 11 {
		t.Errorf("IntArg(9) should fall back to default")
	}
}

func TestParseRequest_Errors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
	}{
		{"missing size", []string{"text"}},
		{"bad height", []string{"text", "tall", "40"}},
		{"negative width", []string{"text", "10", "-5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest(KindMsgBox, tt.tokens)
			var usage *UsageError
			if !errors.As(err, &usage) {
				t.Errorf("ParseRequest(%v) = %v, want *UsageError", tt.tokens, err)
			}
		})
	}
}

func TestRequest_ArgsIsCopy(t *testing.T) {
	args := []string{"x"}
	req, err := NewRequest(KindInputBox, "t", 0, 0, args)
	if err != nil {
		t.Fatal(err)
	}
	args[0] = "mutated"
	if req.Arg(0) != "x" {
		t.Errorf("request shares caller slice: %q", req.Arg(0))
	}
	got := req.Args()
	got[0] = "changed"
	if req.Arg(0) != "x" {
		t.Errorf("Args() leaks internal slice")
	}
}

func TestKindByOption(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := KindByOption(k.String())
		if !ok || got != k {
			t.Errorf("KindByOption(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := KindByOption("ok-label"); ok {
		t.Error("ok-label must not be a dialog selector")
	}
}
