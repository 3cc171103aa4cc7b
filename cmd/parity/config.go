package main

import (
	"log"

	"github.com/hscells/parity/dataset"
	"github.com/magiconair/properties"
)

// config is an experiment configuration loaded from a properties file.
type config struct {
	source       dataset.Source
	path         string
	testFraction float64
	seed         int64

	lr        float64
	epochs    int
	l2        float64
	eta       float64
	threshold float64
	verbose   bool

	modelOutput string
	outputDir   string
	plotsDir    string
}

// loadConfig reads an experiment properties file. Required keys missing from
// the file are fatal, matching how misconfigured experiments should fail
// before any training happens.
func loadConfig(file string) config {
	p := properties.MustLoadFile(file, properties.UTF8)

	var c config
	source, ok := p.Get("dataset.source")
	if !ok {
		log.Fatal("dataset.source must be specified in the experiment properties")
	}
	switch source {
	case "adult":
		c.source = dataset.NewCSVSource(dataset.AdultSchema())
	case "hiring":
		c.source = dataset.NewCSVSource(dataset.HiringSchema())
	case "synthetic":
		c.source = dataset.SyntheticHiringSource{
			N:    p.GetInt("synthetic.n", 5000),
			Bias: p.GetFloat64("synthetic.bias", 1.5),
			Seed: uint64(p.GetInt64("experiment.seed", 42)),
		}
	default:
		log.Fatalf("unrecognised dataset.source %s", source)
	}

	c.path, ok = p.Get("dataset.path")
	if !ok && source != "synthetic" {
		log.Fatal("dataset.path must be specified in the experiment properties")
	}

	c.testFraction = p.GetFloat64("dataset.test_fraction", 0.3)
	c.seed = p.GetInt64("experiment.seed", 42)

	c.lr = p.GetFloat64("model.lr", 0.01)
	c.epochs = p.GetInt("model.epochs", 50)
	c.l2 = p.GetFloat64("model.l2", 0.0001)
	c.eta = p.GetFloat64("model.eta", 10)
	c.threshold = p.GetFloat64("model.threshold", 0.5)
	c.verbose = p.GetBool("model.verbose", false)
	c.modelOutput = p.GetString("model.output", "")

	c.outputDir = p.GetString("output.dir", ".")
	c.plotsDir = p.GetString("plots.dir", "")
	return c
}
