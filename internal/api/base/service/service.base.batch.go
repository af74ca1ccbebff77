package basesvc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"datapage/internal/api/events"
	"datapage/internal/common"
	"datapage/internal/utility"
)

// MaxBatchOps là số thao tác tối đa trong một WriteBatch.
// Vượt quá giới hạn này phải chia thành nhiều batch (xem utility.SplitIntoChunks).
const MaxBatchOps = 500

// Các loại thao tác trong batch
const (
	batchOpInsert = "insert"
	batchOpUpdate = "update"
	batchOpUpsert = "upsert"
	batchOpDelete = "delete"
)

// batchOp là một thao tác ghi đơn lẻ trong batch
type batchOp struct {
	kind       string
	collection *mongo.Collection
	filter     interface{}
	update     interface{} // cho update/upsert
	document   interface{} // cho insert, dùng làm payload event
}

// WriteBatch gom nhiều thao tác ghi trên nhiều collection và commit tất cả
// trong một transaction MongoDB. Hoặc tất cả thành công, hoặc không có gì được ghi.
// Không an toàn cho dùng đồng thời từ nhiều goroutine.
type WriteBatch struct {
	client *mongo.Client
	ops    []batchOp
}

// NewWriteBatch tạo một batch mới dùng client cho session transaction
func NewWriteBatch(client *mongo.Client) *WriteBatch {
	return &WriteBatch{client: client}
}

// Len trả về số thao tác đã thêm vào batch
func (b *WriteBatch) Len() int {
	return len(b.ops)
}

// add thêm một thao tác, trả lỗi nếu batch đã đầy
func (b *WriteBatch) add(op batchOp) error {
	if len(b.ops) >= MaxBatchOps {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			"Batch đã vượt quá giới hạn 500 thao tác, cần chia thành nhiều batch",
			common.StatusBadRequest,
			nil,
		)
	}
	b.ops = append(b.ops, op)
	return nil
}

// InsertOne thêm thao tác insert document vào batch.
// document được marshal thành map và gắn timestamps lúc commit.
func (b *WriteBatch) InsertOne(collection *mongo.Collection, document interface{}) error {
	return b.add(batchOp{
		kind:       batchOpInsert,
		collection: collection,
		document:   document,
	})
}

// UpdateOne thêm thao tác update một document theo filter vào batch.
// update có thể là UpdateData hoặc map chứa operator MongoDB.
func (b *WriteBatch) UpdateOne(collection *mongo.Collection, filter interface{}, update interface{}) error {
	return b.add(batchOp{
		kind:       batchOpUpdate,
		collection: collection,
		filter:     filter,
		update:     update,
	})
}

// UpsertOne thêm thao tác upsert (update nếu có, insert nếu chưa) vào batch
func (b *WriteBatch) UpsertOne(collection *mongo.Collection, filter interface{}, update interface{}) error {
	return b.add(batchOp{
		kind:       batchOpUpsert,
		collection: collection,
		filter:     filter,
		update:     update,
	})
}

// DeleteOne thêm thao tác xóa một document theo filter vào batch
func (b *WriteBatch) DeleteOne(collection *mongo.Collection, filter interface{}) error {
	return b.add(batchOp{
		kind:       batchOpDelete,
		collection: collection,
		filter:     filter,
	})
}

// Commit thực hiện tất cả thao tác trong một transaction.
// Nếu một thao tác thất bại, toàn bộ transaction bị abort và lỗi được trả về.
// Sau khi commit thành công, phát event cho các thao tác insert/delete.
func (b *WriteBatch) Commit(ctx context.Context) error {
	if len(b.ops) == 0 {
		return nil
	}

	session, err := b.client.StartSession()
	if err != nil {
		return common.ConvertMongoError(err)
	}
	defer session.EndSession(ctx)

	now := time.Now().UnixMilli()

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, op := range b.ops {
			switch op.kind {
			case batchOpInsert:
				dataMap, mapErr := utility.ToMap(op.document)
				if mapErr != nil {
					return nil, common.ErrInvalidFormat
				}
				// Bỏ field empty string để sparse index bỏ qua
				for key, value := range dataMap {
					if strValue, ok := value.(string); ok && strValue == "" {
						delete(dataMap, key)
					}
				}
				dataMap["createdAt"] = now
				dataMap["updatedAt"] = now
				if _, insErr := op.collection.InsertOne(sc, dataMap); insErr != nil {
					return nil, common.ConvertMongoError(insErr)
				}
			case batchOpUpdate, batchOpUpsert:
				updateData, updErr := ToUpdateData(op.update)
				if updErr != nil {
					return nil, common.ErrInvalidFormat
				}
				if updateData.Set == nil {
					updateData.Set = make(map[string]interface{})
				}
				updateData.Set["updatedAt"] = now
				opts := options.Update().SetUpsert(op.kind == batchOpUpsert)
				if op.kind == batchOpUpsert {
					if updateData.SetOnInsert == nil {
						updateData.SetOnInsert = make(map[string]interface{})
					}
					updateData.SetOnInsert["createdAt"] = now
				}
				if _, updErr := op.collection.UpdateOne(sc, op.filter, updateData, opts); updErr != nil {
					return nil, common.ConvertMongoError(updErr)
				}
			case batchOpDelete:
				if _, delErr := op.collection.DeleteOne(sc, op.filter); delErr != nil {
					return nil, common.ConvertMongoError(delErr)
				}
			}
		}
		return nil, nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ops":   len(b.ops),
			"error": err.Error(),
		}).Error("WriteBatch: Transaction thất bại, đã rollback")
		if _, ok := err.(*common.Error); ok {
			return err
		}
		return common.ConvertMongoError(err)
	}

	// Phát event sau khi commit thành công
	for _, op := range b.ops {
		switch op.kind {
		case batchOpInsert:
			events.EmitDataChanged(ctx, events.DataChangeEvent{
				CollectionName: op.collection.Name(),
				Operation:      events.OpInsert,
				Document:       op.document,
			})
		case batchOpDelete:
			events.EmitDataChanged(ctx, events.DataChangeEvent{
				CollectionName: op.collection.Name(),
				Operation:      events.OpDelete,
				Document:       nil,
			})
		}
	}

	// Batch đã dùng xong, reset để tránh commit lặp
	b.ops = nil
	return nil
}

// CommitChunked chia danh sách filter+update thành các batch tối đa size
// (chặn trên MaxBatchOps; size <= 0 lấy MaxBatchOps) và commit tuần tự từng
// batch. Nếu một batch giữa chừng thất bại, các batch đã commit không được
// rollback — trả về PartialBulkError với tiến độ đã ghi.
func CommitChunked(ctx context.Context, client *mongo.Client, collection *mongo.Collection, filters []bson.M, updates []interface{}, size int) error {
	if len(filters) != len(updates) {
		return common.ErrInvalidInput
	}
	if size <= 0 || size > MaxBatchOps {
		size = MaxBatchOps
	}

	idxChunks := utility.SplitIntoChunks(makeRange(len(filters)), size)
	committed := 0
	for chunkIdx, chunk := range idxChunks {
		batch := NewWriteBatch(client)
		for _, i := range chunk {
			if err := batch.UpdateOne(collection, filters[i], updates[i]); err != nil {
				return err
			}
		}
		if err := batch.Commit(ctx); err != nil {
			return &common.PartialBulkError{
				CommittedChunks: chunkIdx,
				TotalChunks:     len(idxChunks),
				CommittedCount:  committed,
				Cause:           err,
			}
		}
		committed += len(chunk)
	}
	return nil
}

// InsertChunked chia danh sách document thành các batch tối đa MaxBatchOps
// và commit tuần tự. Cùng hợp đồng lỗi với CommitChunked: thất bại giữa chừng
// trả về PartialBulkError, các batch trước đó giữ nguyên.
func InsertChunked(ctx context.Context, client *mongo.Client, collection *mongo.Collection, docs []interface{}) error {
	chunks := utility.SplitIntoChunks(docs, MaxBatchOps)
	committed := 0
	for chunkIdx, chunk := range chunks {
		batch := NewWriteBatch(client)
		for _, doc := range chunk {
			if err := batch.InsertOne(collection, doc); err != nil {
				return err
			}
		}
		if err := batch.Commit(ctx); err != nil {
			return &common.PartialBulkError{
				CommittedChunks: chunkIdx,
				TotalChunks:     len(chunks),
				CommittedCount:  committed,
				Cause:           err,
			}
		}
		committed += len(chunk)
	}
	return nil
}

// DeleteChunked chia danh sách filter thành các batch tối đa MaxBatchOps
// và commit tuần tự, mỗi filter xóa một document.
func DeleteChunked(ctx context.Context, client *mongo.Client, collection *mongo.Collection, filters []bson.M) error {
	chunks := utility.SplitIntoChunks(filters, MaxBatchOps)
	committed := 0
	for chunkIdx, chunk := range chunks {
		batch := NewWriteBatch(client)
		for _, filter := range chunk {
			if err := batch.DeleteOne(collection, filter); err != nil {
				return err
			}
		}
		if err := batch.Commit(ctx); err != nil {
			return &common.PartialBulkError{
				CommittedChunks: chunkIdx,
				TotalChunks:     len(chunks),
				CommittedCount:  committed,
				Cause:           err,
			}
		}
		committed += len(chunk)
	}
	return nil
}

// makeRange trả về slice [0, 1, ..., n-1]
func makeRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
