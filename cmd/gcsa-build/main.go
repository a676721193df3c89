// Command gcsa-build runs the path-doubling construction pipeline end to
// end against a text k-mer file: ingest, unique-keys, LCP support,
// initial path nodes, doubling, and serialization of the result.
package main

import (
	"context"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/ngaut/log"
	"github.com/spf13/cobra"

	"github.com/xiles84/gcsa/alphabet"
	"github.com/xiles84/gcsa/doubling"
	"github.com/xiles84/gcsa/gcsaerr"
	"github.com/xiles84/gcsa/ingest"
	"github.com/xiles84/gcsa/kmer"
	"github.com/xiles84/gcsa/lcp"
	"github.com/xiles84/gcsa/pathnode"
	"github.com/xiles84/gcsa/recordio"
)

type buildOptions struct {
	input         string
	alphabet      string
	kmerLength    int
	doublingSteps int
	out           string
	spillCompress bool
}

func main() {
	opts := &buildOptions{}
	root := &cobra.Command{
		Use:   "gcsa-build",
		Short: "Build a GCSA path-node index from a text k-mer file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	root.Flags().StringVar(&opts.input, "input", "", "input k-mer text file (required)")
	root.Flags().StringVar(&opts.alphabet, "alphabet", "$ACGTN", "symbol alphabet, '$' terminator first")
	root.Flags().IntVar(&opts.kmerLength, "k", 16, "k-mer length, 1..16")
	root.Flags().IntVar(&opts.doublingSteps, "doubling-steps", 8, "cap on doubling rounds")
	root.Flags().StringVar(&opts.out, "out", "gcsa", "output path prefix")
	root.Flags().BoolVar(&opts.spillCompress, "spill-compress", false, "gzip-compress the .keys and .pathnodes output files")
	root.MarkFlagRequired("input")

	if err := root.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(ctx context.Context, opts *buildOptions) error {
	buildID := uuid.New().String()
	log.Infof("[%s] starting build: input=%s k=%d doubling-steps=%d", buildID, opts.input, opts.kmerLength, opts.doublingSteps)

	if opts.kmerLength < 1 || opts.kmerLength > kmer.MaxLength {
		return gcsaerr.Wrapf(gcsaerr.InputIntegrity, "gcsa-build: k=%d out of range [1,%d]", opts.kmerLength, kmer.MaxLength)
	}
	if 1<<opts.doublingSteps < pathnode.LabelLength {
		return gcsaerr.Wrapf(gcsaerr.InputIntegrity,
			"gcsa-build: doubling-steps=%d gives 2^steps < LabelLength=%d", opts.doublingSteps, pathnode.LabelLength)
	}

	char2comp, comp2char := parseAlphabetFlag(opts.alphabet)
	alpha := alphabet.FromCounts(make([]uint64, len(comp2char)), char2comp, comp2char)

	start := time.Now()
	f, err := os.Open(opts.input)
	if err != nil {
		return gcsaerr.Wrap(gcsaerr.IO, err)
	}
	defer f.Close()

	kmers, err := ingest.Load(f, alpha, opts.kmerLength)
	if err != nil {
		return err
	}
	log.Infof("[%s] loaded %s kmers in %s", buildID, humanize.Comma(int64(len(kmers))), time.Since(start))

	keys, lastChar := kmer.UniqueKeys(kmers)
	log.Infof("[%s] unique-keys: %s kmers -> %s unique labels", buildID, humanize.Comma(int64(len(kmers))), humanize.Comma(int64(len(keys))))

	support := lcp.Build(keys, opts.kmerLength)

	nodes := make([]pathnode.PathNode, len(kmers))
	for i, km := range kmers {
		nodes[i] = pathnode.New(km, uint32(kmer.Label(km.Key)))
	}

	driver := doubling.New(support, opts.doublingSteps)
	nodes, err = driver.Run(ctx, nodes)
	if err != nil {
		return err
	}
	log.Infof("[%s] doubling complete: %s path nodes", buildID, humanize.Comma(int64(len(nodes))))

	if err := writeOutputs(opts, support, keys, lastChar, nodes); err != nil {
		return err
	}
	log.Infof("[%s] build finished in %s", buildID, time.Since(start))
	return nil
}

func writeOutputs(opts *buildOptions, support *lcp.LCP, keys []kmer.Key, lastChar []byte, nodes []pathnode.PathNode) error {
	lcpFile, err := os.Create(opts.out + ".lcp")
	if err != nil {
		return gcsaerr.Wrap(gcsaerr.IO, err)
	}
	defer lcpFile.Close()
	if err := support.Save(lcpFile); err != nil {
		return err
	}

	keysFile, err := os.Create(opts.out + ".keys")
	if err != nil {
		return gcsaerr.Wrap(gcsaerr.IO, err)
	}
	defer keysFile.Close()

	kw, err := recordio.NewWriter(keysFile, opts.spillCompress)
	if err != nil {
		return err
	}
	for _, rec := range recordio.EncodeKeys(keys, lastChar) {
		if err := recordio.WriteRecord(kw, rec); err != nil {
			kw.Close()
			return err
		}
	}
	if err := kw.Close(); err != nil {
		return err
	}

	pathFile, err := os.Create(opts.out + ".pathnodes")
	if err != nil {
		return gcsaerr.Wrap(gcsaerr.IO, err)
	}
	defer pathFile.Close()

	w, err := recordio.NewWriter(pathFile, opts.spillCompress)
	if err != nil {
		return err
	}
	for _, pn := range nodes {
		if err := recordio.WriteRecord(w, recordio.EncodePathNode(pn)); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// parseAlphabetFlag turns a string like "$ACGTN" into char2comp/comp2char
// tables, comp 0 fixed to the first (terminator) character.
func parseAlphabetFlag(s string) (char2comp [alphabet.MaxSigma]byte, comp2char []byte) {
	comp2char = []byte(s)
	for i, c := range comp2char {
		char2comp[c] = byte(i)
	}
	return char2comp, comp2char
}
