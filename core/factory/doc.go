// Package factory provides a small generic registry used to build pluggable
// components by name. Interpolation methods and metrics sinks are both
// resolved this way so configuration files can refer to them by type string.
//
// Example usage:
//
//	reg := factory.NewRegistry[io.Writer]()
//	_ = reg.Register("stdout", func(map[string]any) (io.Writer, error) {
//	    return os.Stdout, nil
//	})
//	w, err := reg.Create(factory.ModuleConfig{Type: "stdout"})
package factory
