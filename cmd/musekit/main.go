// Package main is the entry point for the musekit CLI
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/musekit/musekit/pkg/api"
	"github.com/musekit/musekit/pkg/converter"
	"github.com/musekit/musekit/pkg/events"
	"github.com/musekit/musekit/pkg/pitch"
	"github.com/musekit/musekit/pkg/scale"
	"github.com/musekit/musekit/pkg/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	intervalName string
	scaleName    string
	tonicName    string
	degreeFrom   int
	degreeTo     int
	outputFile   string
	noteDuration float64
	noteVolume   string
	tempo        float64
	serverPort   int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "musekit",
	Short: "Music parameter toolbox: pitches, intervals, scales and MIDI export",
	Long: `musekit computes with musical parameters: western and just intonation
pitches, symbolic intervals, scales, dynamics and event trees, with MIDI
export for the results.

Examples:
  musekit parse cs4
  musekit transpose c4 -i p5
  musekit scale --tonic a4 --scale minor
  musekit export "c4 e4 g4" -o chord.mid
  musekit tui
  musekit serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var parseCmd = &cobra.Command{
	Use:   "parse <pitch>",
	Short: "Parse a pitch name, ratio or frequency",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var transposeCmd = &cobra.Command{
	Use:   "transpose <pitch>",
	Short: "Transpose a pitch by an interval",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranspose,
}

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Print the pitches of a scale",
	RunE:  runScale,
}

var exportCmd = &cobra.Command{
	Use:   "export <pitches>",
	Short: "Export pitches as a MIDI file, one note per pitch",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive scale explorer",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

var scalePresets = map[string][]string{
	"major":      {"p1", "M2", "M3", "p4", "p5", "M6", "M7"},
	"minor":      {"p1", "M2", "m3", "p4", "p5", "m6", "m7"},
	"pentatonic": {"p1", "M2", "M3", "p5", "M6"},
	"chromatic":  {"p1", "m2", "M2", "m3", "M3", "p4", "A4", "p5", "m6", "M6", "m7", "M7"},
	"overtone":   {"1/1", "9/8", "5/4", "11/8", "3/2", "13/8", "7/4"},
}

func init() {
	transposeCmd.Flags().StringVarP(&intervalName, "interval", "i", "", "Interval to add, e.g. p5, m-3, 3/2 or 702.0 (required)")
	_ = transposeCmd.MarkFlagRequired("interval")

	scaleCmd.Flags().StringVarP(&tonicName, "tonic", "t", "c4", "Tonic pitch")
	scaleCmd.Flags().StringVarP(&scaleName, "scale", "s", "major", "Scale preset (major, minor, pentatonic, chromatic, overtone) or space separated intervals")
	scaleCmd.Flags().IntVar(&degreeFrom, "from", 0, "First degree")
	scaleCmd.Flags().IntVar(&degreeTo, "to", 8, "Degree after the last one")

	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "out.mid", "Output .mid file path")
	exportCmd.Flags().Float64VarP(&noteDuration, "duration", "d", 1.0, "Duration per note in beats")
	exportCmd.Flags().StringVar(&noteVolume, "volume", "mf", "Dynamic indicator or decibel value")
	exportCmd.Flags().Float64Var(&tempo, "tempo", 120, "Tempo in beats per minute")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(transposeCmd)
	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	p, err := pitch.FromAny(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%v\n", p)
	fmt.Printf("  hertz: %.6f\n", p.Hertz())
	fmt.Printf("  midi:  %.3f\n", pitch.MidiNumber(p))
	if w, ok := p.(pitch.Western); ok {
		fmt.Printf("  pitch class: %.3f (%s)\n", w.PitchClass(), w.PitchClassName())
		fmt.Printf("  octave: %d\n", w.Octave())
	}
	return nil
}

func runTranspose(cmd *cobra.Command, args []string) error {
	p, err := pitch.FromAny(args[0])
	if err != nil {
		return err
	}
	interval, err := pitch.IntervalFromAny(intervalName)
	if err != nil {
		return err
	}
	transposed := p.Add(interval)
	fmt.Printf("%v + %v = %v (%.6f Hz)\n", p, interval, transposed, transposed.Hertz())
	return nil
}

func buildScale() (*scale.Scale, error) {
	tonic, err := pitch.FromAny(tonicName)
	if err != nil {
		return nil, err
	}

	names, ok := scalePresets[strings.ToLower(scaleName)]
	if !ok {
		names = strings.Fields(scaleName)
	}
	period := make([]pitch.Interval, 0, len(names))
	for _, name := range names {
		interval, err := pitch.IntervalFromAny(name)
		if err != nil {
			return nil, err
		}
		period = append(period, interval)
	}

	family, err := scale.NewRepeatingFamily(period, pitch.Cents(1200))
	if err != nil {
		return nil, err
	}
	return scale.NewRepeating(tonic, family)
}

func runScale(cmd *cobra.Command, args []string) error {
	s, err := buildScale()
	if err != nil {
		return err
	}
	for degree := degreeFrom; degree < degreeTo; degree++ {
		p, err := s.PitchAt(degree)
		if err != nil {
			return err
		}
		fmt.Printf("%4d  %12.6f Hz  %v\n", degree, p.Hertz(), p)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	pitches, err := pitch.ListFromAny(args[0])
	if err != nil {
		return err
	}
	if len(pitches) == 0 {
		return fmt.Errorf("no pitches given")
	}

	sequence := &events.Sequence{}
	for _, p := range pitches {
		note, err := events.NewNote([]pitch.Pitch{p}, noteDuration, noteVolume)
		if err != nil {
			return err
		}
		sequence.Append(note)
	}

	midiConv := converter.NewMIDIConverter()
	if err := midiConv.SetTempo(tempo); err != nil {
		return err
	}
	if err := midiConv.WriteFile(outputFile, sequence); err != nil {
		return err
	}

	fmt.Printf("Wrote %d notes to %s\n", len(pitches), outputFile)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
