package fetch

import (
	"archive/zip"
	"os"
	"strings"
)

// Kind classifies a weight artifact by its container format.
type Kind string

const (
	// KindTorchScript is a TorchScript archive (zip with constants.pkl).
	KindTorchScript Kind = "torchscript"
	// KindCheckpoint is an eager state-dict checkpoint (zip with data.pkl).
	KindCheckpoint Kind = "checkpoint"
	// KindPickle is a legacy bare pickle stream.
	KindPickle Kind = "pickle"
	// KindUnknown is anything else.
	KindUnknown Kind = "unknown"
)

// Sniff classifies the artifact at path from its bytes alone. Nothing is
// deserialized.
func Sniff(path string) (Kind, error) {
	if zr, err := zip.OpenReader(path); err == nil {
		defer zr.Close()
		kind := KindUnknown
		for _, f := range zr.File {
			// A script archive also contains data.pkl, so constants.pkl wins.
			if f.Name == "constants.pkl" || strings.HasSuffix(f.Name, "/constants.pkl") {
				return KindTorchScript, nil
			}
			if f.Name == "data.pkl" || strings.HasSuffix(f.Name, "/data.pkl") {
				kind = KindCheckpoint
			}
		}
		return kind, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer file.Close()
	var head [1]byte
	n, _ := file.Read(head[:])
	// Pickle protocol 2+ opens with the PROTO opcode.
	if n == 1 && head[0] == 0x80 {
		return KindPickle, nil
	}
	return KindUnknown, nil
}
