package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cgxeiji/fir"
	"github.com/cgxeiji/fir/firhw"
)

func main() {
	log.SetPrefix("fir: ")
	log.SetFlags(0)

	var (
		mode    = flag.String("mode", "sw", "filter path (sw, sim, mmio, i2c)")
		base    = flag.Uint64("base", firhw.Base, "accelerator base address (mmio)")
		markers = flag.String("markers", "log", "diagnostics marker sink (log, word, none)")
		diag    = flag.Uint64("diag", firhw.DiagAddr, "diagnostics word address (-markers=word)")
		bus     = flag.String("bus", "", "I²C bus name (i2c)")
		addr    = flag.Uint("addr", firhw.BridgeAddr, "I²C bridge address (i2c)")
		wait    = flag.String("wait", "spin", "done-bit wait policy (spin, bounded, interval)")
		polls   = flag.Int("polls", 1_000_000, "maximum number of polls (bounded)")
		limit   = flag.Duration("limit", time.Second, "maximum wait time (interval)")
		wav     = flag.String("wav", "", "write the output signal to a WAV file")
		rate    = flag.Int("rate", 8000, "WAV sample rate")
		trace   = flag.Bool("v", false, "trace driver steps")
	)
	flag.Parse()

	cfg := config{
		mode:    *mode,
		base:    *base,
		markers: *markers,
		diag:    *diag,
		bus:     *bus,
		addr:    uint16(*addr),
		wait:    *wait,
		polls:   *polls,
		limit:   *limit,
		wav:     *wav,
		rate:    *rate,
		trace:   *trace,
	}
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

type config struct {
	mode    string
	base    uint64
	markers string
	diag    uint64
	bus     string
	addr    uint16
	wait    string
	polls   int
	limit   time.Duration
	wav     string
	rate    int
	trace   bool
}

func run(cfg config) (err error) {
	var out []int32
	switch cfg.mode {
	case "sw":
		out = fir.Compute()
		fmt.Printf("y = %v\n", out)

	case "sim", "mmio", "i2c":
		out, err = runHW(cfg)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("invalid mode %q", cfg.mode)
	}

	if cfg.wav == "" {
		return nil
	}

	f, err := os.Create(cfg.wav)
	if err != nil {
		return fmt.Errorf("could not create wav file: %w", err)
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = fmt.Errorf("could not close wav file: %w", e)
		}
	}()

	return fir.WriteWAV(f, out, cfg.rate)
}

func runHW(cfg config) ([]int32, error) {
	var opts []firhw.Option
	if cfg.trace {
		opts = append(opts, firhw.WithLogger(log.New(os.Stderr, "firhw: ", log.Lmicroseconds)))
	}
	switch cfg.wait {
	case "spin":
		opts = append(opts, firhw.WithWait(firhw.Spin()))
	case "bounded":
		opts = append(opts, firhw.WithWait(firhw.Bounded(cfg.polls)))
	case "interval":
		opts = append(opts, firhw.WithWait(firhw.Interval(time.Millisecond, cfg.limit, firhw.RealClock)))
	default:
		return nil, fmt.Errorf("invalid wait policy %q", cfg.wait)
	}

	switch cfg.markers {
	case "log":
		opts = append(opts, firhw.WithDiagnostics(firhw.LogDiagnostics(log.New(os.Stdout, "diag: ", 0))))
	case "word":
		w, err := firhw.OpenWord(cfg.diag)
		if err != nil {
			return nil, err
		}
		defer w.Close()
		opts = append(opts, firhw.WithDiagnostics(w))
	case "none":
		opts = append(opts, firhw.WithDiagnostics(firhw.Discard))
	default:
		return nil, fmt.Errorf("invalid marker sink %q", cfg.markers)
	}

	var rf firhw.RegisterFile
	switch cfg.mode {
	case "sim":
		rf = firhw.NewSim()
	case "mmio":
		m, err := firhw.OpenMMIO(cfg.base)
		if err != nil {
			return nil, err
		}
		defer m.Close()
		rf = m
	case "i2c":
		b, err := firhw.OpenI2C(cfg.bus, cfg.addr)
		if err != nil {
			return nil, err
		}
		defer b.Close()
		rf = b
	}

	dev := firhw.New(rf, opts...)
	res, err := dev.Run()
	if err != nil {
		return nil, err
	}

	var out []int32
	for i, r := range res {
		fmt.Printf("phase %d (offset %d): y = %v\n", i+1, r.Offset, r.Outputs)
		out = append(out, r.Outputs...)
	}

	st, err := dev.Status()
	if err != nil {
		return nil, err
	}
	fmt.Printf("status = %v\n", st)

	return out, nil
}
