package confgraph

import (
	"bytes"
	"context"
	"io"

	"github.com/confgraph/confgraph/blobstore"
	"github.com/confgraph/confgraph/model"
	"github.com/confgraph/confgraph/packer"
	"github.com/confgraph/confgraph/persistence"
	"github.com/confgraph/confgraph/split"
)

// SaveToWriter writes a record store snapshot to w.
func SaveToWriter(w io.Writer, st *persistence.Store, optFns ...Option) error {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return persistence.WriteStore(w, st, o.codec, o.compression)
}

// LoadFromReader reads a record store snapshot from r.
func LoadFromReader(r io.Reader) (*persistence.Store, error) {
	return persistence.ReadStore(r)
}

// SaveStore writes a snapshot blob named name into bs. The write is
// atomic: a failed save leaves no partial blob behind.
func SaveStore(ctx context.Context, bs blobstore.BlobStore, name string, st *persistence.Store, optFns ...Option) error {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	var buf bytes.Buffer
	if err := persistence.WriteStore(&buf, st, o.codec, o.compression); err != nil {
		o.logger.LogSnapshot(ctx, name, len(st.Records)+len(st.Packed), err)
		return err
	}
	if err := o.controller.WaitIO(ctx, buf.Len()); err != nil {
		return err
	}
	if err := bs.Put(ctx, name, buf.Bytes()); err != nil {
		o.logger.LogSnapshot(ctx, name, len(st.Records)+len(st.Packed), err)
		return err
	}

	o.logger.LogSnapshot(ctx, name, len(st.Records)+len(st.Packed), nil)
	return nil
}

// LoadStore reads the snapshot blob named name from bs.
func LoadStore(ctx context.Context, bs blobstore.BlobStore, name string, optFns ...Option) (*persistence.Store, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	blob, err := bs.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	st, err := persistence.ReadStore(blobstore.Reader(blob))
	o.logger.LogSnapshot(ctx, name, storeLen(st), err)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func storeLen(st *persistence.Store) int {
	if st == nil {
		return 0
	}
	return len(st.Records) + len(st.Packed)
}

// PackRecords groups conformer records by molecular identity into
// packed records, one per molecule. Performed once at load time.
func PackRecords(ctx context.Context, records []*model.GraphRecord, optFns ...Option) ([]*model.PackedGraphRecord, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	packed, err := packer.Pack(records)
	if err != nil {
		return nil, err
	}
	o.logger.LogPack(ctx, len(packed), len(records))
	return packed, nil
}

// SplitIndices deterministically partitions [0, size) into train,
// validation and test index sets.
func SplitIndices(ctx context.Context, size, trainCount, validCount int, seed int64, optFns ...Option) (split.Split, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	sp, err := split.New(size, trainCount, validCount, seed)
	if err != nil {
		return split.Split{}, translateError(err)
	}
	o.logger.LogSplit(ctx, len(sp.Train), len(sp.Valid), len(sp.Test), seed)
	return sp, nil
}
