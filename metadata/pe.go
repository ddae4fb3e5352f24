// Package metadata reads the ECMA-335 CLI metadata embedded in a compiled
// .NET assembly: the PE/COFF header (via the standard library's debug/pe,
// which is the exact-fit package for this and has no third-party analogue
// in the retrieval pack - see DESIGN.md), the CLI header, the metadata
// root, and the #~ table stream. It is the Symbol Loader's foundation:
// no compiler front-end is available in Go, so docgraph reads the binary
// format directly rather than simulating one.
//
// Signature blob decoding covers primitive element types, class/valuetype
// tokens, generic instantiations, arrays and by-ref; custom modifiers are
// skipped and pinned types unwrapped. Function pointers and any other
// element type the reader does not model degrade to a displayed "object"
// and are recorded as a DiagnosticSignatureDecodeLimitation, per
// SPEC_FULL.md §4.1. A TypeSpec token is also shown as "object", without
// that flag.
package metadata

import (
	"debug/pe"
	"encoding/binary"
	"fmt"
)

const cliHeaderSignature = 0x424A5342 // "BSJB"

// comDataDirectoryIndex is the COM_DESCRIPTOR entry in the PE optional
// header's data directory array (IMAGE_DIRECTORY_ENTRY_COMHEADER).
const comDataDirectoryIndex = 14

// image is an opened PE file with its CLI metadata decoded.
type image struct {
	file   *pe.File
	heaps  heaps
	tables *database

	assemblyName    string
	assemblyVersion string
}

func openImage(path string) (*image, error) {
	f, err := pe.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
	}

	rva, size, err := comDescriptorDirectory(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %s: not a managed assembly (no CLI header)", ErrSymbolResolutionFailed, path)
	}

	cliHeader, err := readAtRVA(f, rva, size)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrSymbolResolutionFailed, path, err)
	}
	if len(cliHeader) < 72 {
		f.Close()
		return nil, fmt.Errorf("%w: %s: truncated CLI header", ErrSymbolResolutionFailed, path)
	}

	metadataRVA := binary.LittleEndian.Uint32(cliHeader[8:12])
	metadataSize := binary.LittleEndian.Uint32(cliHeader[12:16])

	root, err := readAtRVA(f, metadataRVA, metadataSize)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrSymbolResolutionFailed, path, err)
	}

	img := &image{file: f}
	if err := img.parseMetadataRoot(root); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrSymbolResolutionFailed, path, err)
	}
	return img, nil
}

func (img *image) Close() error {
	return img.file.Close()
}

func comDescriptorDirectory(f *pe.File) (rva, size uint32, err error) {
	switch oh := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		if comDataDirectoryIndex >= len(oh.DataDirectory) {
			return 0, 0, fmt.Errorf("metadata: PE32 data directory too small")
		}
		d := oh.DataDirectory[comDataDirectoryIndex]
		return d.VirtualAddress, d.Size, nil
	case *pe.OptionalHeader64:
		if comDataDirectoryIndex >= len(oh.DataDirectory) {
			return 0, 0, fmt.Errorf("metadata: PE32+ data directory too small")
		}
		d := oh.DataDirectory[comDataDirectoryIndex]
		return d.VirtualAddress, d.Size, nil
	default:
		return 0, 0, fmt.Errorf("metadata: unrecognized PE optional header type")
	}
}

// readAtRVA resolves a relative virtual address against the section table
// and reads size bytes from the underlying file.
func readAtRVA(f *pe.File, rva, size uint32) ([]byte, error) {
	for _, sec := range f.Sections {
		start := sec.VirtualAddress
		end := start + sec.VirtualSize
		if rva >= start && rva < end {
			data, err := sec.Data()
			if err != nil {
				return nil, err
			}
			offset := rva - start
			if int(offset) >= len(data) {
				return nil, fmt.Errorf("metadata: rva 0x%x out of section bounds", rva)
			}
			avail := uint32(len(data)) - offset
			if size == 0 || size > avail {
				size = avail
			}
			return data[offset : offset+size], nil
		}
	}
	return nil, fmt.Errorf("metadata: rva 0x%x not found in any section", rva)
}

func (img *image) parseMetadataRoot(root []byte) error {
	if len(root) < 16 {
		return fmt.Errorf("metadata root too short")
	}
	if binary.LittleEndian.Uint32(root[0:4]) != cliHeaderSignature {
		return fmt.Errorf("bad metadata root signature")
	}
	versionLen := binary.LittleEndian.Uint32(root[12:16])
	cursor := 16 + int(versionLen)
	if cursor+4 > len(root) {
		return fmt.Errorf("metadata root truncated after version string")
	}
	// Flags (uint16, reserved) then stream count (uint16).
	streamCount := int(binary.LittleEndian.Uint16(root[cursor+2 : cursor+4]))
	cursor += 4

	type streamHeader struct {
		offset, size uint32
		name         string
	}
	var streams []streamHeader
	for i := 0; i < streamCount; i++ {
		if cursor+8 > len(root) {
			return fmt.Errorf("metadata root truncated in stream header %d", i)
		}
		off := binary.LittleEndian.Uint32(root[cursor : cursor+4])
		size := binary.LittleEndian.Uint32(root[cursor+4 : cursor+8])
		cursor += 8
		nameStart := cursor
		for cursor < len(root) && root[cursor] != 0 {
			cursor++
		}
		name := string(root[nameStart:cursor])
		// Stream names are NUL-terminated and padded to a 4-byte boundary.
		cursor++
		for cursor%4 != 0 {
			cursor++
		}
		streams = append(streams, streamHeader{off, size, name})
	}

	var tableStream []byte
	for _, s := range streams {
		if int(s.offset)+int(s.size) > len(root) {
			continue
		}
		data := root[s.offset : s.offset+s.size]
		switch s.name {
		case "#Strings":
			img.heaps.strings = data
		case "#US":
			img.heaps.us = data
		case "#GUID":
			img.heaps.guid = data
		case "#Blob":
			img.heaps.blob = data
		case "#~":
			tableStream = data
		case "#-":
			return fmt.Errorf("edit-and-continue (#-) metadata streams are not supported")
		}
	}
	if tableStream == nil {
		return fmt.Errorf("no #~ table stream found")
	}

	db, err := parseTableStream(tableStream, &img.heaps)
	if err != nil {
		return err
	}
	img.tables = db
	return nil
}
