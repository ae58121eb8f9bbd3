package commerce

// GraphQL documents. Each cart operation requests the same fixed field set so
// every response can replace the local snapshot wholesale.

const cartFieldsFragment = `
fragment cartFields on Cart {
  id
  checkoutUrl
  totalQuantity
  cost {
    subtotalAmount { amount currencyCode }
    totalAmount { amount currencyCode }
    totalTaxAmount { amount currencyCode }
    totalDutyAmount { amount currencyCode }
  }
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        cost { totalAmount { amount currencyCode } }
        merchandise {
          ... on ProductVariant {
            id
            title
            price { amount currencyCode }
            compareAtPrice { amount currencyCode }
            selectedOptions { name value }
            image { url altText width height }
            product { id handle title }
          }
        }
      }
    }
  }
}`

const productFieldsFragment = `
fragment productFields on Product {
  id
  handle
  title
  description
  tags
  availableForSale
  priceRange {
    minVariantPrice { amount currencyCode }
    maxVariantPrice { amount currencyCode }
  }
  featuredImage { url altText width height }
  images(first: 20) {
    edges { node { url altText width height } }
  }
  options { name values }
  variants(first: 100) {
    edges {
      node {
        id
        title
        availableForSale
        price { amount currencyCode }
        compareAtPrice { amount currencyCode }
        selectedOptions { name value }
      }
    }
  }
}`

const (
	mutationCartCreate = `
mutation cartCreate {
  cartCreate {
    cart { ...cartFields }
    userErrors { field code message }
  }
}` + cartFieldsFragment

	mutationCartLinesAdd = `
mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart { ...cartFields }
    userErrors { field code message }
  }
}` + cartFieldsFragment

	mutationCartLinesUpdate = `
mutation cartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart { ...cartFields }
    userErrors { field code message }
  }
}` + cartFieldsFragment

	mutationCartLinesRemove = `
mutation cartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart { ...cartFields }
    userErrors { field code message }
  }
}` + cartFieldsFragment

	queryCart = `
query getCart($cartId: ID!) {
  cart(id: $cartId) { ...cartFields }
}` + cartFieldsFragment
)

const (
	queryProductByHandle = `
query getProduct($handle: String!) {
  product(handle: $handle) { ...productFields }
}` + productFieldsFragment

	queryProducts = `
query getProducts($first: Int!, $query: String) {
  products(first: $first, query: $query, sortKey: RELEVANCE) {
    edges { node { ...productFields } }
  }
}` + productFieldsFragment

	queryCollectionProducts = `
query getCollectionProducts($handle: String!, $first: Int!) {
  collection(handle: $handle) {
    products(first: $first) {
      edges { node { ...productFields } }
    }
  }
}` + productFieldsFragment

	queryCollections = `
query getCollections($first: Int!) {
  collections(first: $first) {
    edges {
      node {
        id
        handle
        title
        description
        image { url altText width height }
      }
    }
  }
}`
)
