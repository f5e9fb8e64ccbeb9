package clickhouse

// Nullable integer columns are declared as Int64/Int32 in the schema,
// so pointer fields need widening before Append.

func int64Ptr(v *int) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}

func int32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}
