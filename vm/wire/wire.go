// Package wire implements the Kapila program image format: programs and word
// definitions packed as CBOR envelopes with a content checksum, canonically
// encoded so the same image always produces the same bytes. Image files
// conventionally use the .kpi extension.
package wire

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/kapila/vm"
)

// FormatVersion is the image format this package reads and writes.
const FormatVersion byte = 1

var (
	// ErrChecksum indicates the envelope payload does not match its
	// declared hash.
	ErrChecksum = errors.New("wire: checksum mismatch")

	// ErrVersion indicates an image written by an unsupported format
	// version.
	ErrVersion = errors.New("wire: unsupported format version")
)

// cborEncMode is the canonical CBOR encoding mode for deterministic output.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// ---------------------------------------------------------------------------
// Image structures
// ---------------------------------------------------------------------------

// Instruction is the serialized form of one vm.Instr.
type Instruction struct {
	Op    byte    `cbor:"1,keyasint"`
	Int   int64   `cbor:"2,keyasint,omitempty"`
	Float float64 `cbor:"3,keyasint,omitempty"`
	Bool  bool    `cbor:"4,keyasint,omitempty"`
	Text  string  `cbor:"5,keyasint,omitempty"`
}

// WordDef is a named program carried by an image.
type WordDef struct {
	Name string        `cbor:"1,keyasint"`
	Code []Instruction `cbor:"2,keyasint"`
}

// Image is one distributable unit: word definitions plus an optional main
// program.
type Image struct {
	Version byte          `cbor:"1,keyasint"`
	Name    string        `cbor:"2,keyasint,omitempty"`
	Words   []WordDef     `cbor:"3,keyasint,omitempty"`
	Main    []Instruction `cbor:"4,keyasint,omitempty"`
}

// envelope wraps the encoded image with its content hash.
type envelope struct {
	Payload []byte   `cbor:"1,keyasint"`
	Hash    [32]byte `cbor:"2,keyasint"`
}

// ---------------------------------------------------------------------------
// vm conversions
// ---------------------------------------------------------------------------

// InstructionsFromProgram converts a vm.Program to its serialized form.
func InstructionsFromProgram(p vm.Program) []Instruction {
	out := make([]Instruction, len(p))
	for i, in := range p {
		out[i] = Instruction{
			Op:    byte(in.Op),
			Int:   in.Int,
			Float: in.Float,
			Bool:  in.Bool,
			Text:  in.Text,
		}
	}
	return out
}

// ProgramFromInstructions converts serialized instructions back to a
// vm.Program.
func ProgramFromInstructions(ins []Instruction) vm.Program {
	out := make(vm.Program, len(ins))
	for i, in := range ins {
		out[i] = vm.Instr{
			Op:    vm.Op(in.Op),
			Int:   in.Int,
			Float: in.Float,
			Bool:  in.Bool,
			Text:  in.Text,
		}
	}
	return out
}

// BuildImage assembles an image from word programs and a main program.
// Words are sorted by name so identical inputs encode identically.
func BuildImage(name string, words map[string]vm.Program, main vm.Program) *Image {
	img := &Image{Version: FormatVersion, Name: name}
	wordNames := make([]string, 0, len(words))
	for n := range words {
		wordNames = append(wordNames, n)
	}
	sort.Strings(wordNames)
	for _, n := range wordNames {
		img.Words = append(img.Words, WordDef{
			Name: n,
			Code: InstructionsFromProgram(words[n]),
		})
	}
	if len(main) > 0 {
		img.Main = InstructionsFromProgram(main)
	}
	return img
}

// MainProgram returns the image's main program, empty when none was packed.
func (img *Image) MainProgram() vm.Program {
	return ProgramFromInstructions(img.Main)
}

// Dictionary builds a vm.Dictionary from the image's word definitions.
func (img *Image) Dictionary() *vm.Dictionary {
	dict := vm.NewDictionary()
	for _, w := range img.Words {
		dict.Define(w.Name, ProgramFromInstructions(w.Code))
	}
	return dict
}

// ---------------------------------------------------------------------------
// Encoding
// ---------------------------------------------------------------------------

// Encode serializes an image to envelope bytes, hashing the canonical
// payload.
func Encode(img *Image) ([]byte, error) {
	payload, err := cborEncMode.Marshal(img)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal image: %w", err)
	}
	env := envelope{
		Payload: payload,
		Hash:    sha256.Sum256(payload),
	}
	data, err := cborEncMode.Marshal(&env)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal envelope: %w", err)
	}
	return data, nil
}

// Decode deserializes envelope bytes, verifying the checksum and format
// version.
func Decode(data []byte) (*Image, error) {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("wire: unmarshal envelope: %w", err)
	}
	if computed := sha256.Sum256(env.Payload); computed != env.Hash {
		return nil, fmt.Errorf("%w: declared %x, computed %x", ErrChecksum, env.Hash, computed)
	}
	var img Image
	if err := cbor.Unmarshal(env.Payload, &img); err != nil {
		return nil, fmt.Errorf("wire: unmarshal image: %w", err)
	}
	if img.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, img.Version)
	}
	return &img, nil
}

// MarshalInstructions serializes a bare instruction sequence; the word store
// keeps program blobs in this form.
func MarshalInstructions(ins []Instruction) ([]byte, error) {
	return cborEncMode.Marshal(ins)
}

// UnmarshalInstructions deserializes a bare instruction sequence.
func UnmarshalInstructions(data []byte) ([]Instruction, error) {
	var ins []Instruction
	if err := cbor.Unmarshal(data, &ins); err != nil {
		return nil, fmt.Errorf("wire: unmarshal instructions: %w", err)
	}
	return ins, nil
}
