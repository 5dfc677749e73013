package section

import (
	"fmt"

	"github.com/arloliu/endf/errs"
	"github.com/arloliu/endf/format"
	"github.com/arloliu/endf/record"
)

// Section is the structured form of one (MAT, MF, MT) section.
type Section interface {
	// Key returns the section's MAT, MF and MT numbers.
	Key() (mat, mf, mt int)
}

// Codec is a reader/writer pair for one MF family.
type Codec struct {
	// Supports reports whether the codec handles the given MT.
	Supports func(mt int) bool
	// Read decodes section text.
	Read func(text string) (Section, error)
	// Write encodes a section produced by Read (or built by the caller).
	Write func(sec Section) (string, error)
}

// Registry maps an MF number to its codec.
type Registry struct {
	name   string
	codecs map[int]Codec
}

// Name returns the registry's name, used in error messages.
func (r Registry) Name() string {
	return r.name
}

// Lookup returns the codec for (mf, mt).
//
// Returns errs.ErrUnsupportedSection when no codec is registered.
func (r Registry) Lookup(mf, mt int) (Codec, error) {
	codec, ok := r.codecs[mf]
	if !ok || !codec.Supports(mt) {
		return Codec{}, fmt.Errorf("%w: MF%d/MT%d in %s registry", errs.ErrUnsupportedSection, mf, mt, r.name)
	}

	return codec, nil
}

// Supports reports whether a codec is registered for (mf, mt).
func (r Registry) Supports(mf, mt int) bool {
	_, err := r.Lookup(mf, mt)
	return err == nil
}

// Read decodes a section, choosing the codec from the MF/MT columns of its
// first line.
func (r Registry) Read(text string) (Section, error) {
	_, mf, mt, err := record.NewReader(text).Control()
	if err != nil {
		return nil, err
	}

	codec, err := r.Lookup(mf, mt)
	if err != nil {
		return nil, err
	}

	return codec.Read(text)
}

// Write encodes a section with the codec registered for its MF/MT.
func (r Registry) Write(sec Section) (string, error) {
	if sec == nil {
		return "", fmt.Errorf("%w: nil section", errs.ErrSectionMismatch)
	}

	_, mf, mt := sec.Key()
	codec, err := r.Lookup(mf, mt)
	if err != nil {
		return "", err
	}

	return codec.Write(sec)
}

func anyMT(int) bool { return true }

func mtIn(mts ...int) func(int) bool {
	return func(mt int) bool {
		for _, m := range mts {
			if m == mt {
				return true
			}
		}

		return false
	}
}

// codec adapts typed read/write functions to a Codec.
func codec[T Section](supports func(int) bool, read func(string) (T, error), write func(T) (string, error)) Codec {
	return Codec{
		Supports: supports,
		Read: func(text string) (Section, error) {
			sec, err := read(text)
			if err != nil {
				return nil, err
			}

			return sec, nil
		},
		Write: func(sec Section) (string, error) {
			typed, ok := sec.(T)
			if !ok {
				return "", fmt.Errorf("%w: got %T", errs.ErrSectionMismatch, sec)
			}

			return write(typed)
		},
	}
}

var endf6Registry = Registry{
	name: "endf6",
	codecs: map[int]Codec{
		1:  codec(mtIn(451), ReadInfo, WriteInfo),
		3:  codec(anyMT, ReadCrossSection, WriteCrossSection),
		4:  codec(anyMT, ReadAngularDistribution, WriteAngularDistribution),
		8:  {Supports: mtIn(454, 457, 459), Read: readMF8, Write: writeMF8},
		31: codec(anyMT, ReadCovariance, WriteCovariance),
		33: codec(anyMT, ReadCovariance, WriteCovariance),
		35: codec(anyMT, ReadEnergyCovariance, WriteEnergyCovariance),
	},
}

var errorrRegistry = Registry{
	name: "errorr",
	codecs: map[int]Codec{
		1:  codec(mtIn(451), ReadGroupStructure, WriteGroupStructure),
		3:  codec(anyMT, ReadGroupCrossSection, WriteGroupCrossSection),
		31: codec(anyMT, ReadGroupCovariance, WriteGroupCovariance),
		33: codec(anyMT, ReadGroupCovariance, WriteGroupCovariance),
		35: codec(anyMT, ReadGroupCovariance, WriteGroupCovariance),
	},
}

// ForKind returns the registry used to decode sections of a tape of the given
// kind. ERRORR tapes get their own layouts; every other kind uses the ENDF-6
// layouts.
func ForKind(kind format.Kind) Registry {
	if kind == format.KindErrorr {
		return errorrRegistry
	}

	return endf6Registry
}

// ForSection returns the registry whose codecs encode sec.
func ForSection(sec Section) Registry {
	switch sec.(type) {
	case *GroupStructure, *GroupCrossSection, *GroupCovariance:
		return errorrRegistry
	default:
		return endf6Registry
	}
}

// Read decodes an ENDF-6 section with the default registry.
func Read(text string) (Section, error) {
	return endf6Registry.Read(text)
}

// Write encodes a section with the default registry.
func Write(sec Section) (string, error) {
	return endf6Registry.Write(sec)
}

func readMF8(text string) (Section, error) {
	_, _, mt, err := record.NewReader(text).Control()
	if err != nil {
		return nil, err
	}

	var sec Section
	if mt == MTDecay {
		sec, err = ReadDecayData(text)
	} else {
		sec, err = ReadFissionYields(text)
	}
	if err != nil {
		return nil, err
	}

	return sec, nil
}

func writeMF8(sec Section) (string, error) {
	switch s := sec.(type) {
	case *DecayData:
		return WriteDecayData(s)
	case *FissionYields:
		return WriteFissionYields(s)
	default:
		return "", fmt.Errorf("%w: got %T for MF8", errs.ErrSectionMismatch, sec)
	}
}

// wrapRead annotates a decoding error with the section it came from.
func wrapRead(mf int, text string, err error) error {
	mat, got, mt, cerr := record.NewReader(text).Control()
	if cerr != nil {
		return fmt.Errorf("MF%d: %w", mf, err)
	}

	return fmt.Errorf("MAT%d/MF%d/MT%d: %w", mat, got, mt, err)
}
