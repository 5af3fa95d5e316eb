package entity

// NormalizedImage изображение после цепочки нормализации.
// Живёт ровно одну попытку распознавания, затем освобождается через Release.
type NormalizedImage struct {
	data  []byte
	owned bool
}

// NewNormalizedImage оборачивает буфер, созданный нормализатором
func NewNormalizedImage(data []byte) *NormalizedImage {
	return &NormalizedImage{data: data, owned: true}
}

// PassthroughImage оборачивает исходные байты вызывающего без копирования.
// Release такой буфер не затирает.
func PassthroughImage(data []byte) *NormalizedImage {
	return &NormalizedImage{data: data}
}

// Bytes возвращает содержимое изображения (nil после Release)
func (n *NormalizedImage) Bytes() []byte {
	if n == nil {
		return nil
	}
	return n.data
}

// Transformed сообщает, был ли буфер создан нормализатором
func (n *NormalizedImage) Transformed() bool {
	return n != nil && n.owned
}

// Release затирает промежуточный буфер, чтобы данные не пережили вызов
func (n *NormalizedImage) Release() {
	if n == nil {
		return
	}
	if n.owned {
		clear(n.data)
	}
	n.data = nil
}
