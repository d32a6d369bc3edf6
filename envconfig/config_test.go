package envconfig

import (
	"log/slog"
	"runtime"
	"testing"
)

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"0":     slog.LevelInfo,
		"1":     slog.LevelDebug,
		"true":  slog.LevelDebug,
		"2":     slog.Level(-8),
		"3":     slog.Level(-12),
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("AGG_DEBUG", k)
			if i := LogLevel(); i != v {
				t.Errorf("%s: erwartet %v, bekommen %v", k, v, i)
			}
		})
	}
}

func TestExecutor(t *testing.T) {
	cases := map[string]string{
		"":             "parallel",
		"sequential":   "sequential",
		" Sequential ": "sequential",
		"'parallel'":   "parallel",
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("AGG_EXECUTOR", k)
			if got := Executor(); got != v {
				t.Errorf("%q: erwartet %q, bekommen %q", k, v, got)
			}
		})
	}
}

func TestNumParallel(t *testing.T) {
	t.Setenv("AGG_NUM_PARALLEL", "")
	if got := NumParallel(); got != runtime.GOMAXPROCS(0) {
		t.Errorf("ungesetzt: erwartet GOMAXPROCS=%d, bekommen %d", runtime.GOMAXPROCS(0), got)
	}

	t.Setenv("AGG_NUM_PARALLEL", "3")
	if got := NumParallel(); got != 3 {
		t.Errorf("3: erwartet 3, bekommen %d", got)
	}

	t.Setenv("AGG_NUM_PARALLEL", "viele")
	if got := NumParallel(); got != runtime.GOMAXPROCS(0) {
		t.Errorf("ungueltig: erwartet GOMAXPROCS, bekommen %d", got)
	}
}

func TestUint(t *testing.T) {
	cases := map[string]uint{
		"0":    0,
		"1":    1,
		"2048": 2048,
		"-1":   512,
		"abc":  512,
		"":     512,
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("AGG_BATCH_LIMIT", k)
			if got := BatchLimit(); got != v {
				t.Errorf("%s: erwartet %d, bekommen %d", k, v, got)
			}
		})
	}
}

func TestUint64(t *testing.T) {
	cases := map[string]uint64{
		"":                     1,
		"0":                    0,
		"42":                   42,
		"18446744073709551615": 18446744073709551615,
		"-1":                   1,
		"seed":                 1,
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("AGG_SEED", k)
			if got := Seed(); got != v {
				t.Errorf("%s: erwartet %d, bekommen %d", k, v, got)
			}
		})
	}
}

func TestBool(t *testing.T) {
	cases := map[string]bool{
		"":      false,
		"true":  true,
		"false": false,
		"1":     true,
		"0":     false,
		// ungueltige Werte gelten als gesetzt
		"random": true,
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("AGG_VERIFY", k)
			if got := VerifyBatches(); got != v {
				t.Errorf("%s: erwartet %v, bekommen %v", k, v, got)
			}
		})
	}
}

func TestVar(t *testing.T) {
	cases := map[string]string{
		"value":       "value",
		" value ":     "value",
		" 'value' ":   "value",
		` "value" `:   "value",
		" ' value ' ": " value ",
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("AGG_VAR", k)
			if s := Var("AGG_VAR"); s != v {
				t.Errorf("%s: erwartet %q, bekommen %q", k, v, s)
			}
		})
	}
}

func TestAsMapComplete(t *testing.T) {
	vals := Values()
	for _, k := range []string{"AGG_DEBUG", "AGG_EXECUTOR", "AGG_NUM_PARALLEL", "AGG_MAX_BATCHES", "AGG_BATCH_LIMIT", "AGG_EXP_TABLE_SIZE", "AGG_VERIFY", "AGG_SEED"} {
		if _, ok := vals[k]; !ok {
			t.Errorf("Values: %s fehlt", k)
		}
	}
}
