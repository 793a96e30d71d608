package rules

import "github.com/arthur-debert/packwise/pkg/types"

// ImageOptions returns the per-format minification parameters of the image
// pipeline. They do not depend on build or serving mode.
func ImageOptions() types.ImageOptions {
	return types.ImageOptions{
		Gifsicle: types.GifsicleOptions{Interlaced: false},
		Jpegtran: types.JpegtranOptions{Progressive: true, Arithmetic: false},
		Optipng:  types.OptipngOptions{OptimizationLevel: 5},
		Pngquant: types.PngquantOptions{Floyd: 0.5, Speed: 2},
		Svgo: types.SvgoOptions{Plugins: []types.SvgoPlugin{
			{Name: "removeTitle", Enabled: true},
			{Name: "convertPathData", Enabled: false},
		}},
	}
}
