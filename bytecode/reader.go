// Package bytecode decodes the big-endian Aeon bytecode wire format
// (spec.md §6) into a code.Object tree. It is a pure byte-stream decoder
// with no dependency on the process runtime.
package bytecode

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"unicode/utf8"

	"github.com/aeon-lang/aeonvm/code"
)

var signature = [4]byte{'a', 'e', 'o', 'n'}

const version = 1

// ParseFile opens path and parses it as a bytecode stream.
func ParseFile(path string) (*code.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(InvalidFile, path)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a single top-level CompiledCode record from r, after
// verifying the signature and version.
func Parse(r io.Reader) (*code.Object, error) {
	br := bufio.NewReader(r)

	for _, want := range signature {
		got, err := br.ReadByte()
		if err != nil {
			return nil, newError(InvalidSignature, "truncated signature")
		}
		if got != want {
			return nil, newError(InvalidSignature, "signature mismatch")
		}
	}

	ver, err := br.ReadByte()
	if err != nil {
		return nil, newError(InvalidVersion, "truncated version")
	}
	if ver != version {
		return nil, newError(InvalidVersion, "unsupported version")
	}

	return readCompiledCode(br)
}

func readByte(r *bufio.Reader, kind ErrorKind) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, newError(kind, "unexpected end of stream")
	}
	return b, nil
}

func readU8(r *bufio.Reader) (uint8, error) {
	b, err := readByte(r, InvalidInteger)
	return b, err
}

func readU16(r *bufio.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, newError(InvalidInteger, "truncated u16")
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func readU32(r *bufio.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, newError(InvalidInteger, "truncated u32")
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func readU64(r *bufio.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, newError(InvalidInteger, "truncated u64")
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func readI64(r *bufio.Reader) (int64, error) {
	v, err := readU64(r)
	return int64(v), err
}

func readF64(r *bufio.Reader) (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, newError(InvalidFloat, "truncated f64")
	}
	bits := binary.BigEndian.Uint64(buf[:])
	return math.Float64frombits(bits), nil
}

func readString(r *bufio.Reader) (string, error) {
	size, err := readU64(r)
	if err != nil {
		return "", newError(InvalidString, "truncated string length")
	}

	var buf []byte
	for i := uint64(0); i < size; i++ {
		b, err := readByte(r, InvalidString)
		if err != nil {
			return "", err
		}
		buf = append(buf, b)
	}

	if !utf8.Valid(buf) {
		return "", newError(InvalidString, "invalid utf-8")
	}

	return string(buf), nil
}

func readStringVector(r *bufio.Reader) ([]string, error) {
	count, err := readU64(r)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, count)
	for i := uint64(0); i < count; i++ {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func readU32Vector(r *bufio.Reader) ([]uint32, error) {
	count, err := readU64(r)
	if err != nil {
		return nil, err
	}

	out := make([]uint32, 0, count)
	for i := uint64(0); i < count; i++ {
		v, err := readU32(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func readI64Vector(r *bufio.Reader) ([]int64, error) {
	count, err := readU64(r)
	if err != nil {
		return nil, err
	}

	out := make([]int64, 0, count)
	for i := uint64(0); i < count; i++ {
		v, err := readI64(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func readF64Vector(r *bufio.Reader) ([]float64, error) {
	count, err := readU64(r)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, count)
	for i := uint64(0); i < count; i++ {
		v, err := readF64(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func readInstruction(r *bufio.Reader) (code.Instruction, error) {
	opcode, err := readU16(r)
	if err != nil {
		return code.Instruction{}, err
	}

	args, err := readU32Vector(r)
	if err != nil {
		return code.Instruction{}, err
	}

	line, err := readU32(r)
	if err != nil {
		return code.Instruction{}, err
	}

	column, err := readU32(r)
	if err != nil {
		return code.Instruction{}, err
	}

	return code.Instruction{Opcode: opcode, Arguments: args, Line: line, Column: column}, nil
}

func readInstructionVector(r *bufio.Reader) ([]code.Instruction, error) {
	count, err := readU64(r)
	if err != nil {
		return nil, err
	}

	out := make([]code.Instruction, 0, count)
	for i := uint64(0); i < count; i++ {
		ins, err := readInstruction(r)
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
	}
	return out, nil
}

func readCodeVector(r *bufio.Reader) ([]*code.Object, error) {
	count, err := readU64(r)
	if err != nil {
		return nil, err
	}

	out := make([]*code.Object, 0, count)
	for i := uint64(0); i < count; i++ {
		c, err := readCompiledCode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func readCompiledCode(r *bufio.Reader) (*code.Object, error) {
	name, err := readString(r)
	if err != nil {
		return nil, err
	}

	file, err := readString(r)
	if err != nil {
		return nil, err
	}

	line, err := readU32(r)
	if err != nil {
		return nil, err
	}

	args, err := readU32(r)
	if err != nil {
		return nil, err
	}

	reqArgs, err := readU32(r)
	if err != nil {
		return nil, err
	}

	restByte, err := readU8(r)
	if err != nil {
		return nil, err
	}

	locals, err := readStringVector(r)
	if err != nil {
		return nil, err
	}

	instructions, err := readInstructionVector(r)
	if err != nil {
		return nil, err
	}

	intLiterals, err := readI64Vector(r)
	if err != nil {
		return nil, err
	}

	floatLiterals, err := readF64Vector(r)
	if err != nil {
		return nil, err
	}

	strLiterals, err := readStringVector(r)
	if err != nil {
		return nil, err
	}

	codeObjects, err := readCodeVector(r)
	if err != nil {
		return nil, err
	}

	return &code.Object{
		Name:              name,
		File:              file,
		Line:              line,
		Arguments:         args,
		RequiredArguments: reqArgs,
		RestArgument:      restByte == 1,
		Locals:            locals,
		Instructions:      instructions,
		IntegerLiterals:   intLiterals,
		FloatLiterals:     floatLiterals,
		StringLiterals:    strLiterals,
		CodeObjects:       codeObjects,
	}, nil
}
