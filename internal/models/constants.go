package models

const (
	ActivityDishViewed          = "DishViewed"
	ActivityDishCompleted       = "DishCompleted"
	ActivityIngredientInspected = "IngredientInspected"
	ActivityCustomizationSet    = "CustomizationChanged"
	ActivityCartItemAdded       = "CartItemAdded"
	ActivityCartItemRemoved     = "CartItemRemoved"
	ActivityRestaurantViewed    = "RestaurantViewed"

	StorageKeyCustomizations = "dishStory_customizations"
	StorageKeyCart           = "dishStory_cart"

	StorageBackendMemory   = "memory"
	StorageBackendFile     = "file"
	StorageBackendPostgres = "postgres"
	StorageBackendS3       = "s3"
)
