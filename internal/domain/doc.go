// Package domain contains the core business entities, value objects, and
// validation rules of the application: the verb record, its grammatical
// category, the person slots it conjugates over and the practice modes that
// drive its mastery score. It is independent of any storage or delivery
// mechanism.
package domain
