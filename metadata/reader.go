package metadata

// Read opens the assembly at path, decodes its CLI metadata tables, and
// flattens them into an AssemblySymbol. This is the only entry point the
// loader package calls into; everything else in this package is an
// implementation detail of getting from PE bytes to that tree.
func Read(path string) (*AssemblySymbol, error) {
	img, err := openImage(path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	asm, err := img.readSymbols()
	if err != nil {
		return nil, err
	}
	return asm, nil
}
