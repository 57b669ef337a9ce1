package ml

import (
	"fmt"
	"math/rand"

	"github.com/drakos74/go-ex-machina/xmath"
)

// Dataset holds features and one-hot labels row by row.
type Dataset struct {
	X xmath.Matrix
	Y xmath.Matrix
}

// NewDataset creates a new dataset, checking that all rows are consistent.
func NewDataset(x, y xmath.Matrix) (*Dataset, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("features and labels differ in size: %d vs %d", len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("empty dataset")
	}
	for i := range x {
		if len(x[i]) != len(x[0]) {
			return nil, fmt.Errorf("inconsistent features at %d: %d vs %d", i, len(x[i]), len(x[0]))
		}
		if len(y[i]) != len(y[0]) {
			return nil, fmt.Errorf("inconsistent labels at %d: %d vs %d", i, len(y[i]), len(y[0]))
		}
	}
	return &Dataset{X: x, Y: y}, nil
}

// Len returns the number of samples.
func (ds *Dataset) Len() int {
	return len(ds.X)
}

// Features returns the size of the feature vector.
func (ds *Dataset) Features() int {
	return len(ds.X[0])
}

// Classes returns the size of the label vector.
func (ds *Dataset) Classes() int {
	return len(ds.Y[0])
}

// Batches splits the dataset into shuffled mini-batches of the given size.
// The last batch might be smaller.
func (ds *Dataset) Batches(size int, rnd *rand.Rand) []*Dataset {
	if size <= 0 || size > ds.Len() {
		size = ds.Len()
	}
	perm := rnd.Perm(ds.Len())
	batches := make([]*Dataset, 0, ds.Len()/size+1)
	for start := 0; start < len(perm); start += size {
		end := start + size
		if end > len(perm) {
			end = len(perm)
		}
		x := xmath.Mat(end - start)
		y := xmath.Mat(end - start)
		for i, p := range perm[start:end] {
			x[i] = ds.X[p]
			y[i] = ds.Y[p]
		}
		batches = append(batches, &Dataset{X: x, Y: y})
	}
	return batches
}

// Split shuffles the dataset and splits it according to the given ratio.
func (ds *Dataset) Split(ratio float64, rnd *rand.Rand) (*Dataset, *Dataset, error) {
	n := int(float64(ds.Len()) * ratio)
	if n <= 0 || n >= ds.Len() {
		return nil, nil, fmt.Errorf("ratio %v leaves an empty split for %d samples", ratio, ds.Len())
	}
	batches := ds.Batches(ds.Len(), rnd)
	all := batches[0]
	return &Dataset{X: all.X[:n], Y: all.Y[:n]}, &Dataset{X: all.X[n:], Y: all.Y[n:]}, nil
}

// OneHot encodes the class as a vector of the given size.
func OneHot(class, classes int) xmath.Vector {
	v := xmath.Vec(classes)
	v[class] = 1
	return v
}

// Blobs generates gaussian clusters of points, one cluster per class.
func Blobs(classes, features, samples int, spread float64, rnd *rand.Rand) (*Dataset, error) {
	if classes <= 1 || features <= 0 || samples < classes {
		return nil, fmt.Errorf("invalid blob parameters: classes=%d features=%d samples=%d", classes, features, samples)
	}
	centers := xmath.Mat(classes).Generate(features, func(s, index int) xmath.Vector {
		c := xmath.Vec(s)
		for i := range c {
			c[i] = rnd.Float64()*10 - 5
		}
		return c
	})
	x := xmath.Mat(samples)
	y := xmath.Mat(samples)
	for i := 0; i < samples; i++ {
		class := i % classes
		p := xmath.Vec(features)
		for j := range p {
			p[j] = centers[class][j] + rnd.NormFloat64()*spread
		}
		x[i] = p
		y[i] = OneHot(class, classes)
	}
	return NewDataset(x, y)
}
