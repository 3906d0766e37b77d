package file

import (
	"github.com/c360/streamblocks/block"
)

// Register adds the file block factories to the registry.
func Register(r *block.Registry) error {
	regs := []block.Registration{
		{
			Name:        "file/source",
			Category:    "file",
			Description: "Stream raw element bytes from a binary file",
			Factory:     makeSource,
		},
		{
			Name:        "file/sink",
			Category:    "file",
			Description: "Append raw element bytes to a binary file",
			Factory:     makeSink,
		},
	}
	for _, reg := range regs {
		if err := r.Register(reg); err != nil {
			return err
		}
	}
	return nil
}

func makeSource(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	path, err := p.String("path", "")
	if err != nil {
		return nil, err
	}
	repeat, err := p.Bool("repeat", false)
	if err != nil {
		return nil, err
	}
	return NewSource(dt, path, repeat)
}

func makeSink(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	path, err := p.String("path", "")
	if err != nil {
		return nil, err
	}
	return NewSink(dt, path)
}
