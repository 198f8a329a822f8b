package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fyb-funds/fund-service/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on the MongoDB driver. Money values are stored
// as decimal strings so they round-trip without float drift.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore creates a MongoDB-backed store.
func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		client: client,
		db:     client.Database(database),
	}
}

// EnsureIndexes creates the composite unique index backing the atomic payment
// upsert. Safe to call repeatedly.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.records().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "memberId", Value: 1}, {Key: "weekNumber", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_payment_member_week"),
	})
	if err != nil {
		return fmt.Errorf("failed to create payment record index: %w", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) members() *mongo.Collection      { return s.db.Collection("members") }
func (s *MongoStore) records() *mongo.Collection      { return s.db.Collection("weekly_payment_records") }
func (s *MongoStore) transactions() *mongo.Collection { return s.db.Collection("transactions") }
func (s *MongoStore) items() *mongo.Collection        { return s.db.Collection("items") }
func (s *MongoStore) orders() *mongo.Collection       { return s.db.Collection("orders") }
func (s *MongoStore) fund() *mongo.Collection         { return s.db.Collection("fund") }

// Document shapes. Kept separate from the models so decimal fields can be
// stored as strings.

type memberDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Contribution string    `bson:"contribution"`
	HasPaid      bool      `bson:"hasPaid"`
	JoinDate     time.Time `bson:"joinDate"`
	DisplayOrder int       `bson:"displayOrder"`
	CreatedAt    time.Time `bson:"createdAt"`
}

type paymentRecordDoc struct {
	ID           string     `bson:"_id"`
	MemberID     string     `bson:"memberId"`
	MemberName   string     `bson:"memberName"`
	WeekStart    time.Time  `bson:"weekStart"`
	WeekEnd      time.Time  `bson:"weekEnd"`
	WeekNumber   int        `bson:"weekNumber"`
	Contribution string     `bson:"contribution"`
	HasPaid      bool       `bson:"hasPaid"`
	PaymentDate  *time.Time `bson:"paymentDate,omitempty"`
	MarkedBy     string     `bson:"markedBy"`
	MarkedAt     time.Time  `bson:"markedAt"`
	Notes        string     `bson:"notes,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt"`
}

type transactionDoc struct {
	ID          string    `bson:"_id"`
	Description string    `bson:"description"`
	Amount      string    `bson:"amount"`
	Date        time.Time `bson:"date"`
	Type        string    `bson:"type"`
	Category    string    `bson:"category"`
	CreatedAt   time.Time `bson:"createdAt"`
}

type itemDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Price       string    `bson:"price"`
	Category    string    `bson:"category"`
	Description string    `bson:"description,omitempty"`
	CreatedAt   time.Time `bson:"createdAt"`
}

type orderLineDoc struct {
	ItemID   string `bson:"itemId"`
	ItemName string `bson:"itemName"`
	Quantity int    `bson:"quantity"`
	Price    string `bson:"price"`
}

type orderDoc struct {
	ID          string         `bson:"_id"`
	MemberID    string         `bson:"memberId"`
	MemberName  string         `bson:"memberName"`
	Items       []orderLineDoc `bson:"items"`
	TotalAmount string         `bson:"totalAmount"`
	Status      string         `bson:"status"`
	OrderDate   time.Time      `bson:"orderDate"`
	CreatedAt   time.Time      `bson:"createdAt"`
}

type fundDoc struct {
	ID          string    `bson:"_id"`
	BaseAmount  string    `bson:"baseAmount"`
	LastUpdated time.Time `bson:"lastUpdated"`
	UpdatedBy   string    `bson:"updatedBy"`
}

func parseMoney(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value %q: %w", field, value, err)
	}
	return d, nil
}

// Members

func (s *MongoStore) ListMembers(ctx context.Context) ([]models.Member, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "displayOrder", Value: 1},
		{Key: "joinDate", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := s.members().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	var docs []memberDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}
	members := make([]models.Member, 0, len(docs))
	for _, doc := range docs {
		member, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		members = append(members, *member)
	}
	return members, nil
}

func (s *MongoStore) GetMember(ctx context.Context, id string) (*models.Member, error) {
	var doc memberDoc
	err := s.members().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return doc.toModel()
}

func (s *MongoStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = models.NewID()
	}
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}
	if _, err := s.members().InsertOne(ctx, newMemberDoc(member)); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (s *MongoStore) UpdateMember(ctx context.Context, id string, update models.MemberUpdate) error {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Contribution != nil {
		set["contribution"] = update.Contribution.String()
	}
	if update.HasPaid != nil {
		set["hasPaid"] = *update.HasPaid
	}
	if update.DisplayOrder != nil {
		set["displayOrder"] = *update.DisplayOrder
	}
	if len(set) == 0 {
		_, err := s.GetMember(ctx, id)
		return err
	}
	result, err := s.members().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *MongoStore) DeleteMember(ctx context.Context, id string) error {
	result, err := s.members().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *MongoStore) CountMembers(ctx context.Context) (int64, error) {
	count, err := s.members().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// BatchUpdateMemberOrders issues one ordered bulk write. MongoDB bulk writes
// are not transactional on a standalone server, so a mid-batch failure is
// reported to the caller as a partial failure rather than rolled back.
func (s *MongoStore) BatchUpdateMemberOrders(ctx context.Context, assignments []models.OrderAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(assignments))
	for _, a := range assignments {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": a.MemberID}).
			SetUpdate(bson.M{"$set": bson.M{"displayOrder": a.DisplayOrder}}))
	}
	result, err := s.members().BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return fmt.Errorf("failed to batch update member orders: %w", err)
	}
	if result.MatchedCount != int64(len(assignments)) {
		return fmt.Errorf("batch update matched %d of %d members: %w", result.MatchedCount, len(assignments), ErrRecordNotFound)
	}
	return nil
}

// Payment records

func (s *MongoStore) FindPaymentRecords(ctx context.Context, memberID string, weekNumber int) ([]models.WeeklyPaymentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "markedAt", Value: -1}})
	cursor, err := s.records().Find(ctx, bson.M{"memberId": memberID, "weekNumber": weekNumber}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment records: %w", err)
	}
	return decodePaymentRecords(ctx, cursor)
}

func (s *MongoStore) InsertPaymentRecord(ctx context.Context, record *models.WeeklyPaymentRecord) error {
	if record.ID == "" {
		record.ID = models.NewID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if _, err := s.records().InsertOne(ctx, newPaymentRecordDoc(record)); err != nil {
		return fmt.Errorf("failed to insert payment record: %w", err)
	}
	return nil
}

func (s *MongoStore) UpdatePaymentRecord(ctx context.Context, id string, update models.PaymentRecordUpdate) error {
	set := bson.M{}
	unset := bson.M{}
	if update.HasPaid != nil {
		set["hasPaid"] = *update.HasPaid
	}
	if update.PaymentDate != nil {
		set["paymentDate"] = *update.PaymentDate
	} else if update.ClearPaymentDate {
		unset["paymentDate"] = ""
	}
	if update.Contribution != nil {
		set["contribution"] = update.Contribution.String()
	}
	if update.MarkedBy != nil {
		set["markedBy"] = *update.MarkedBy
	}
	if update.MarkedAt != nil {
		set["markedAt"] = *update.MarkedAt
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}
	if len(set) == 0 && len(unset) == 0 {
		return nil
	}
	changes := bson.M{}
	if len(set) > 0 {
		changes["$set"] = set
	}
	if len(unset) > 0 {
		changes["$unset"] = unset
	}
	result, err := s.records().UpdateOne(ctx, bson.M{"_id": id}, changes)
	if err != nil {
		return fmt.Errorf("failed to update payment record: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// UpsertPaymentRecord is atomic on the server: a single FindOneAndUpdate with
// upsert keyed on (memberId, weekNumber).
func (s *MongoStore) UpsertPaymentRecord(ctx context.Context, record *models.WeeklyPaymentRecord) error {
	if record.ID == "" {
		record.ID = models.NewID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	filter := bson.M{"memberId": record.MemberID, "weekNumber": record.WeekNumber}
	set := bson.M{
		"memberName":   record.MemberName,
		"weekStart":    record.WeekStart,
		"weekEnd":      record.WeekEnd,
		"contribution": record.Contribution.String(),
		"hasPaid":      record.HasPaid,
		"markedBy":     record.MarkedBy,
		"markedAt":     record.MarkedAt,
		"notes":        record.Notes,
	}
	changes := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":       record.ID,
			"createdAt": record.CreatedAt,
		},
	}
	if record.PaymentDate != nil {
		set["paymentDate"] = *record.PaymentDate
	} else {
		changes["$unset"] = bson.M{"paymentDate": ""}
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc paymentRecordDoc
	if err := s.records().FindOneAndUpdate(ctx, filter, changes, opts).Decode(&doc); err != nil {
		return fmt.Errorf("failed to upsert payment record: %w", err)
	}
	record.ID = doc.ID
	record.CreatedAt = doc.CreatedAt
	return nil
}

func (s *MongoStore) ListPaymentRecords(ctx context.Context) ([]models.WeeklyPaymentRecord, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "weekNumber", Value: 1},
		{Key: "markedAt", Value: -1},
	})
	cursor, err := s.records().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment records: %w", err)
	}
	return decodePaymentRecords(ctx, cursor)
}

// Transactions

func (s *MongoStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.transactions().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	var docs []transactionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	transactions := make([]models.Transaction, 0, len(docs))
	for _, doc := range docs {
		amount, err := parseMoney("amount", doc.Amount)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, models.Transaction{
			ID:          doc.ID,
			Description: doc.Description,
			Amount:      amount,
			Date:        doc.Date,
			Type:        doc.Type,
			Category:    doc.Category,
			BaseModel:   models.BaseModel{CreatedAt: doc.CreatedAt},
		})
	}
	return transactions, nil
}

func (s *MongoStore) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = models.NewID()
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now().UTC()
	}
	doc := transactionDoc{
		ID:          transaction.ID,
		Description: transaction.Description,
		Amount:      transaction.Amount.String(),
		Date:        transaction.Date,
		Type:        transaction.Type,
		Category:    transaction.Category,
		CreatedAt:   transaction.CreatedAt,
	}
	if _, err := s.transactions().InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (s *MongoStore) DeleteTransaction(ctx context.Context, id string) error {
	result, err := s.transactions().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Items

func (s *MongoStore) ListItems(ctx context.Context) ([]models.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.items().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	var docs []itemDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	items := make([]models.Item, 0, len(docs))
	for _, doc := range docs {
		item, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func (s *MongoStore) GetItem(ctx context.Context, id string) (*models.Item, error) {
	var doc itemDoc
	err := s.items().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return doc.toModel()
}

func (s *MongoStore) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = models.NewID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	doc := itemDoc{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price.String(),
		Category:    item.Category,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
	}
	if _, err := s.items().InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (s *MongoStore) UpdateItem(ctx context.Context, id string, update models.ItemUpdate) error {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Price != nil {
		set["price"] = update.Price.String()
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if len(set) == 0 {
		_, err := s.GetItem(ctx, id)
		return err
	}
	result, err := s.items().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *MongoStore) DeleteItem(ctx context.Context, id string) error {
	result, err := s.items().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *MongoStore) CountItems(ctx context.Context) (int64, error) {
	count, err := s.items().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// Orders

func (s *MongoStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	cursor, err := s.orders().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	orders := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (s *MongoStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var doc orderDoc
	err := s.orders().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return doc.toModel()
}

func (s *MongoStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = models.NewID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	lines := make([]orderLineDoc, 0, len(order.Items))
	for _, line := range order.Items {
		lines = append(lines, orderLineDoc{
			ItemID:   line.ItemID,
			ItemName: line.ItemName,
			Quantity: line.Quantity,
			Price:    line.Price.String(),
		})
	}
	doc := orderDoc{
		ID:          order.ID,
		MemberID:    order.MemberID,
		MemberName:  order.MemberName,
		Items:       lines,
		TotalAmount: order.TotalAmount.String(),
		Status:      order.Status,
		OrderDate:   order.OrderDate,
		CreatedAt:   order.CreatedAt,
	}
	if _, err := s.orders().InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *MongoStore) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	result, err := s.orders().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Fund

func (s *MongoStore) GetFund(ctx context.Context) (*models.Fund, error) {
	var doc fundDoc
	err := s.fund().FindOne(ctx, bson.M{"_id": models.FundRecordID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get fund: %w", err)
	}
	baseAmount, err := parseMoney("baseAmount", doc.BaseAmount)
	if err != nil {
		return nil, err
	}
	return &models.Fund{
		ID:          doc.ID,
		BaseAmount:  baseAmount,
		LastUpdated: doc.LastUpdated,
		UpdatedBy:   doc.UpdatedBy,
	}, nil
}

func (s *MongoStore) UpsertFund(ctx context.Context, fund *models.Fund) error {
	fund.ID = models.FundRecordID
	doc := fundDoc{
		ID:          fund.ID,
		BaseAmount:  fund.BaseAmount.String(),
		LastUpdated: fund.LastUpdated,
		UpdatedBy:   fund.UpdatedBy,
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.fund().ReplaceOne(ctx, bson.M{"_id": fund.ID}, doc, opts); err != nil {
		return fmt.Errorf("failed to upsert fund: %w", err)
	}
	return nil
}

// Conversions

func newMemberDoc(member *models.Member) memberDoc {
	return memberDoc{
		ID:           member.ID,
		Name:         member.Name,
		Contribution: member.Contribution.String(),
		HasPaid:      member.HasPaid,
		JoinDate:     member.JoinDate,
		DisplayOrder: member.DisplayOrder,
		CreatedAt:    member.CreatedAt,
	}
}

func (d memberDoc) toModel() (*models.Member, error) {
	contribution, err := parseMoney("contribution", d.Contribution)
	if err != nil {
		return nil, err
	}
	return &models.Member{
		ID:           d.ID,
		Name:         d.Name,
		Contribution: contribution,
		HasPaid:      d.HasPaid,
		JoinDate:     d.JoinDate,
		DisplayOrder: d.DisplayOrder,
		BaseModel:    models.BaseModel{CreatedAt: d.CreatedAt},
	}, nil
}

func newPaymentRecordDoc(record *models.WeeklyPaymentRecord) paymentRecordDoc {
	return paymentRecordDoc{
		ID:           record.ID,
		MemberID:     record.MemberID,
		MemberName:   record.MemberName,
		WeekStart:    record.WeekStart,
		WeekEnd:      record.WeekEnd,
		WeekNumber:   record.WeekNumber,
		Contribution: record.Contribution.String(),
		HasPaid:      record.HasPaid,
		PaymentDate:  record.PaymentDate,
		MarkedBy:     record.MarkedBy,
		MarkedAt:     record.MarkedAt,
		Notes:        record.Notes,
		CreatedAt:    record.CreatedAt,
	}
}

func (d paymentRecordDoc) toModel() (*models.WeeklyPaymentRecord, error) {
	contribution, err := parseMoney("contribution", d.Contribution)
	if err != nil {
		return nil, err
	}
	return &models.WeeklyPaymentRecord{
		ID:           d.ID,
		MemberID:     d.MemberID,
		MemberName:   d.MemberName,
		WeekStart:    d.WeekStart,
		WeekEnd:      d.WeekEnd,
		WeekNumber:   d.WeekNumber,
		Contribution: contribution,
		HasPaid:      d.HasPaid,
		PaymentDate:  d.PaymentDate,
		MarkedBy:     d.MarkedBy,
		MarkedAt:     d.MarkedAt,
		Notes:        d.Notes,
		BaseModel:    models.BaseModel{CreatedAt: d.CreatedAt},
	}, nil
}

func (d itemDoc) toModel() (*models.Item, error) {
	price, err := parseMoney("price", d.Price)
	if err != nil {
		return nil, err
	}
	return &models.Item{
		ID:          d.ID,
		Name:        d.Name,
		Price:       price,
		Category:    d.Category,
		Description: d.Description,
		BaseModel:   models.BaseModel{CreatedAt: d.CreatedAt},
	}, nil
}

func (d orderDoc) toModel() (*models.Order, error) {
	totalAmount, err := parseMoney("totalAmount", d.TotalAmount)
	if err != nil {
		return nil, err
	}
	lines := make([]models.OrderLine, 0, len(d.Items))
	for _, line := range d.Items {
		price, err := parseMoney("price", line.Price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, models.OrderLine{
			ItemID:   line.ItemID,
			ItemName: line.ItemName,
			Quantity: line.Quantity,
			Price:    price,
		})
	}
	return &models.Order{
		ID:          d.ID,
		MemberID:    d.MemberID,
		MemberName:  d.MemberName,
		Items:       lines,
		TotalAmount: totalAmount,
		Status:      d.Status,
		OrderDate:   d.OrderDate,
		BaseModel:   models.BaseModel{CreatedAt: d.CreatedAt},
	}, nil
}

func decodePaymentRecords(ctx context.Context, cursor *mongo.Cursor) ([]models.WeeklyPaymentRecord, error) {
	var docs []paymentRecordDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode payment records: %w", err)
	}
	records := make([]models.WeeklyPaymentRecord, 0, len(docs))
	for _, doc := range docs {
		record, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}
